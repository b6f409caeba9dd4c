package invoicepdf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yourusername/invoicer/models"
)

var forbiddenFilenameChars = strings.NewReplacer(
	`\`, "-", "/", "-", ":", "-", "*", "-", "?", "-",
	`"`, "-", "<", "-", ">", "-", "|", "-",
)

// FormatFilename expands a filename template for inv. Recognized tokens are
// {freelancer}, {client}, {month}, {monthPad}, {year} and {yyyymm}; anything
// else is kept as written. The result always ends in ".pdf" and contains
// none of \ / : * ? " < > |.
//
// A blank template yields "invoice-YYYYMM.pdf". An issue date that does not
// parse leaves the date tokens empty.
func FormatFilename(template string, inv *models.Invoice, client *models.Client, settings *models.Settings) string {
	var year, month, monthPad string
	if issued, err := models.ParseISODate(inv.IssueDate); err == nil {
		year = strconv.Itoa(issued.Year())
		month = strconv.Itoa(int(issued.Month()))
		monthPad = fmt.Sprintf("%02d", int(issued.Month()))
	}

	if strings.TrimSpace(template) == "" {
		return forbiddenFilenameChars.Replace("invoice-" + year + monthPad + ".pdf")
	}

	name := strings.NewReplacer(
		"{freelancer}", settings.FreelancerName,
		"{client}", client.CompanyName,
		"{month}", month,
		"{monthPad}", monthPad,
		"{year}", year,
		"{yyyymm}", year+monthPad,
	).Replace(template)

	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return forbiddenFilenameChars.Replace(name)
}
