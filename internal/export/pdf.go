package export

import (
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"facscope/internal/aggregate"
)

// WritePDF writes the expertise summary as an A4 report. Records are not
// included; the CSV and Markdown outputs carry them.
func WritePDF(w io.Writer, res aggregate.Result, meta Meta) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, "Faculty Expertise Report", "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, tr("Generated "+meta.timestamp()+"  |  Catalog: "+orDash(meta.Catalog)+
		"  |  Mode: "+orDash(meta.Mode)+"  |  Pages: "+strconv.Itoa(len(res.Summaries))), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	for i, s := range res.Summaries {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 6, tr(strconv.Itoa(i+1)+". "+s.FacultyName), "", "L", false)

		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 4, tr(s.URL), "", "L", false)
		pdf.SetTextColor(0, 0, 0)

		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(s.ExpertiseString()), "", "L", false)
		pdf.Ln(3)
	}

	return pdf.Output(w)
}
