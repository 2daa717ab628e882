package utils

import (
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"spenden/src/config"
	"spenden/src/models"
)

var (
	ErrNotEligible       = errors.New("donation is not eligible for a tax receipt")
	ErrIncompleteAddress = errors.New("donor address is incomplete")
)

// ReceiptNumber derives the document number from the donation id and the
// current year. Regeneration within the same calendar year yields the same
// number.
func ReceiptNumber(d *models.Donation) string {
	return receiptNumberForYear(d, time.Now().Year())
}

func receiptNumberForYear(d *models.Donation, year int) string {
	short := strings.ToUpper(strings.ReplaceAll(d.ID.String(), "-", "")[:8])
	return fmt.Sprintf("SPB-%d-%s", year, short)
}

var (
	germanUnits = []string{"null", "ein", "zwei", "drei", "vier", "fünf", "sechs", "sieben", "acht", "neun"}
	germanTeens = []string{"zehn", "elf", "zwölf", "dreizehn", "vierzehn", "fünfzehn", "sechzehn", "siebzehn", "achtzehn", "neunzehn"}
	germanTens  = []string{"", "", "zwanzig", "dreißig", "vierzig", "fünfzig", "sechzig", "siebzig", "achtzig", "neunzig"}
)

func germanBelowHundred(n int) string {
	switch {
	case n < 10:
		return germanUnits[n]
	case n < 20:
		return germanTeens[n-10]
	default:
		tens := germanTens[n/10]
		unit := n % 10
		if unit == 0 {
			return tens
		}
		return germanUnits[unit] + "und" + tens
	}
}

func germanBelowThousand(n int) string {
	if n < 100 {
		return germanBelowHundred(n)
	}
	s := germanUnits[n/100] + "hundert"
	if rest := n % 100; rest > 0 {
		s += germanBelowHundred(rest)
	}
	return s
}

func germanNumber(n int) string {
	if n >= 1000000 {
		millions := n / 1000000
		var s string
		if millions == 1 {
			s = "eine Million"
		} else {
			s = germanNumber(millions) + " Millionen"
		}
		if rest := n % 1000000; rest > 0 {
			s += " " + germanNumber(rest)
		}
		return s
	}
	if n < 1000 {
		return germanBelowThousand(n)
	}
	s := germanBelowThousand(n/1000) + "tausend"
	if rest := n % 1000; rest > 0 {
		s += germanBelowThousand(rest)
	}
	return s
}

// GermanAmountWords spells out a EUR amount the way German receipt forms
// expect, e.g. 521.50 -> "fünfhunderteinundzwanzig Euro und fünfzig Cent".
func GermanAmountWords(amount float64) string {
	euros := int(amount)
	cents := int(amount*100+0.5) - euros*100

	var s string
	switch euros {
	case 0:
		s = "null Euro"
	case 1:
		s = "ein Euro"
	default:
		s = germanNumber(euros) + " Euro"
	}
	if cents > 0 {
		if cents == 1 {
			s += " und ein Cent"
		} else {
			s += " und " + germanBelowHundred(cents) + " Cent"
		}
	}
	return s
}

// FormatEuro renders an amount in de-DE convention, e.g. "1.250,00 €".
func FormatEuro(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(s, ".", 2)
	intPart, decPart := parts[0], parts[1]

	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}
	out := grouped.String() + "," + decPart + " €"
	if neg {
		out = "-" + out
	}
	return out
}

func FormatGermanDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// ReceiptPreconditions reports why a receipt cannot be issued, or nil.
func ReceiptPreconditions(d *models.Donation) error {
	if !d.TaxReceiptEligible {
		return ErrNotEligible
	}
	if !d.HasAddress() {
		return ErrIncompleteAddress
	}
	return nil
}

const receiptTemplate = `<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<title>Zuwendungsbestätigung {{.ReceiptNumber}}</title>
<style>
  body { font-family: Arial, sans-serif; color: #111; max-width: 700px; margin: 40px auto; line-height: 1.5; }
  h1 { font-size: 18px; text-align: center; }
  .issuer, .donor { margin-bottom: 24px; }
  .amount-box { border: 1px solid #111; padding: 12px 16px; margin: 24px 0; }
  .legal { font-size: 11px; margin-top: 32px; }
  .signature { margin-top: 48px; }
  table { width: 100%; border-collapse: collapse; }
  td { padding: 4px 8px; vertical-align: top; }
</style>
</head>
<body>
  <h1>Bestätigung über Geldzuwendungen<br>im Sinne des § 10b des Einkommensteuergesetzes</h1>

  <div class="issuer">
    <strong>Aussteller (Zuwendungsempfänger):</strong><br>
    {{.Org.LegalName}}<br>
    {{.Org.Street}}, {{.Org.PostalCode}} {{.Org.City}}, {{.Org.Country}}<br>
    Vereinsregister: {{.Org.RegistrationNumber}} &middot; Steuernummer: {{.Org.TaxID}}
  </div>

  <div class="donor">
    <strong>Name und Anschrift des Zuwendenden:</strong><br>
    {{.DonorName}}<br>
    {{.DonorStreet}}<br>
    {{.DonorPostalCode}} {{.DonorCity}}{{if .DonorCountry}}, {{.DonorCountry}}{{end}}
  </div>

  <div class="amount-box">
    <table>
      <tr><td><strong>Betrag der Zuwendung:</strong></td><td>{{.AmountFormatted}}</td></tr>
      <tr><td><strong>in Worten:</strong></td><td>{{.AmountWords}}</td></tr>
      <tr><td><strong>Verwendungszweck:</strong></td><td>{{.Purpose}}</td></tr>
      <tr><td><strong>Tag der Zuwendung:</strong></td><td>{{.DonationDate}}</td></tr>
      <tr><td><strong>Belegnummer:</strong></td><td>{{.ReceiptNumber}}</td></tr>
    </table>
  </div>

  <p>Es handelt sich um den Verzicht auf Erstattung von Aufwendungen: Nein</p>

  <p class="legal">
    Wir sind wegen Förderung der Religion nach dem Freistellungsbescheid des Finanzamts
    {{.Org.City}}, Steuernummer {{.Org.TaxID}}, nach § 5 Abs. 1 Nr. 9 des
    Körperschaftsteuergesetzes von der Körperschaftsteuer und nach § 3 Nr. 6 des
    Gewerbesteuergesetzes von der Gewerbesteuer befreit.
  </p>
  <p class="legal">
    Es wird bestätigt, dass die Zuwendung nur zur Förderung der Religion
    (§ 52 Abs. 2 Satz 1 Nr. 2 AO) verwendet wird.
  </p>
  <p class="legal">
    Hinweis: Wer vorsätzlich oder grob fahrlässig eine unrichtige Zuwendungsbestätigung
    erstellt oder veranlasst, dass Zuwendungen nicht zu den in der Zuwendungsbestätigung
    angegebenen steuerbegünstigten Zwecken verwendet werden, haftet für die entgangene
    Steuer (§ 10b Abs. 4 EStG, § 9 Abs. 3 KStG, § 9 Nr. 5 GewStG).
  </p>

  <div class="signature">
    {{.Org.City}}, den {{.IssueDate}}<br><br>
    _________________________________<br>
    {{.Org.Representative}}<br>
    für den {{.Org.LegalName}}
  </div>
</body>
</html>`

var receiptTmpl = template.Must(template.New("receipt").Parse(receiptTemplate))

type receiptData struct {
	Org             *config.Organization
	ReceiptNumber   string
	DonorName       string
	DonorStreet     string
	DonorPostalCode string
	DonorCity       string
	DonorCountry    string
	AmountFormatted string
	AmountWords     string
	Purpose         string
	DonationDate    string
	IssueDate       string
}

// GenerateReceipt renders the Zuwendungsbestätigung document. Callers must
// check ReceiptPreconditions first; this only formats.
func GenerateReceipt(d *models.Donation, org *config.Organization, issuedAt time.Time) (string, error) {
	if err := ReceiptPreconditions(d); err != nil {
		return "", err
	}

	donationDate := d.CreatedAt
	if d.CapturedAt != nil {
		donationDate = *d.CapturedAt
	}

	data := receiptData{
		Org:             org,
		ReceiptNumber:   receiptNumberForYear(d, issuedAt.Year()),
		DonorName:       d.DonorName,
		AmountFormatted: FormatEuro(d.Amount),
		AmountWords:     GermanAmountWords(d.Amount),
		Purpose:         "Spende - " + d.TierName,
		DonationDate:    FormatGermanDate(donationDate),
		IssueDate:       FormatGermanDate(issuedAt),
	}
	if d.DonorStreet != nil {
		data.DonorStreet = *d.DonorStreet
	}
	if d.DonorPostalCode != nil {
		data.DonorPostalCode = *d.DonorPostalCode
	}
	if d.DonorCity != nil {
		data.DonorCity = *d.DonorCity
	}
	if d.DonorCountry != nil {
		data.DonorCountry = *d.DonorCountry
	}

	var out strings.Builder
	if err := receiptTmpl.Execute(&out, data); err != nil {
		return "", err
	}
	return out.String(), nil
}
