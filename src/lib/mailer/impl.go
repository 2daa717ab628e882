package mailer

import (
	"fmt"
	"html/template"
	"strings"

	"spenden/src/config"
	"spenden/src/lib"
	"spenden/src/models"

	log "github.com/sirupsen/logrus"
)

const confirmationTemplate = `<!DOCTYPE html>
<html lang="de">
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #8b4513;">Vielen Dank für Ihre Spende!</h2>
  <p>{{.Salutation}}</p>
  <p>wir bestätigen dankend den Eingang Ihrer Spende an den {{.OrgLegalName}}.</p>
  <table style="border-collapse: collapse; width: 100%;">
    <tr><td style="padding: 4px 8px;"><strong>Betrag:</strong></td><td style="padding: 4px 8px;">{{.Amount}}</td></tr>
    <tr><td style="padding: 4px 8px;"><strong>Kategorie:</strong></td><td style="padding: 4px 8px;">{{.TierName}}</td></tr>
    {{if .Gotram}}<tr><td style="padding: 4px 8px;"><strong>Gotram:</strong></td><td style="padding: 4px 8px;">{{.Gotram}}</td></tr>{{end}}
    {{if .TransactionID}}<tr><td style="padding: 4px 8px;"><strong>Transaktionsnummer:</strong></td><td style="padding: 4px 8px;">{{.TransactionID}}</td></tr>{{end}}
  </table>
  {{if .ReceiptNote}}<p>{{.ReceiptNote}}</p>{{end}}
  <p>Mit freundlichen Grüßen,<br>{{.OrgName}}</p>
</body>
</html>`

var confirmationTmpl = template.Must(template.New("confirmation").Parse(confirmationTemplate))

type confirmationData struct {
	Salutation    string
	OrgName       string
	OrgLegalName  string
	Amount        string
	TierName      string
	Gotram        string
	TransactionID string
	ReceiptNote   string
}

// SendDonationConfirmation emails the donor after a successful capture. Any
// failure is logged and swallowed; the payment outcome never depends on it.
func SendDonationConfirmation(d *models.Donation, formattedAmount string) {
	cfg := config.Get()
	org := config.GetOrganization()

	data := confirmationData{
		Salutation:   fmt.Sprintf("Liebe/r %s,", d.DonorName),
		OrgName:      org.Name,
		OrgLegalName: org.LegalName,
		Amount:       formattedAmount,
		TierName:     d.TierName,
	}
	if d.DonorGotram != nil {
		data.Gotram = *d.DonorGotram
	}
	if d.PayPalTransactionID != nil {
		data.TransactionID = *d.PayPalTransactionID
	}
	if d.TaxReceiptEligible {
		data.ReceiptNote = "Ihre Spende ist steuerlich absetzbar. Eine Zuwendungsbestätigung wird Ihnen gesondert zugesendet."
	}

	var body strings.Builder
	if err := confirmationTmpl.Execute(&body, data); err != nil {
		log.WithError(err).Error("Failed to render donation confirmation email")
		return
	}

	err := lib.SendMail(&lib.SendMailInput{
		From:     cfg.MailFrom,
		FromName: cfg.MailFromName,
		To:       []string{d.DonorEmail},
		ReplyTo:  org.ContactEmail,
		Subject:  "Spendenbestätigung - " + org.Name,
		Body:     body.String(),
		Html:     true,
	})
	if err != nil {
		log.WithError(err).WithField("donation_id", d.ID).Error("Failed to send donation confirmation email")
	}
}

// SendTaxReceipt delivers the rendered Zuwendungsbestätigung to the donor.
// Unlike the confirmation mail this reports failure, so the admin endpoint
// can tell the operator the document was not delivered.
func SendTaxReceipt(d *models.Donation, receiptNumber, receiptHTML string) error {
	cfg := config.Get()
	org := config.GetOrganization()

	err := lib.SendMail(&lib.SendMailInput{
		From:     cfg.MailFrom,
		FromName: cfg.MailFromName,
		To:       []string{d.DonorEmail},
		ReplyTo:  org.ContactEmail,
		Subject:  fmt.Sprintf("Zuwendungsbestätigung %s - %s", receiptNumber, org.LegalName),
		Body:     receiptHTML,
		Html:     true,
	})
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"donation_id":    d.ID,
			"receipt_number": receiptNumber,
		}).Error("Failed to send tax receipt email")
	}
	return err
}
