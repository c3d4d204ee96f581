package templates

import (
	"fmt"
	"html"
	"strings"
)

// ReceiptLine is one stored file listed in an upload receipt
type ReceiptLine struct {
	FileName     string
	DocumentType string
	Status       string
}

// RenderUploadReceipt generates the HTML for the email a rider gets after an
// upload. Every value is escaped.
func RenderUploadReceipt(riderName string, lines []ReceiptLine) string {
	var rows strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td><td class=\"status\">%s</td></tr>\n",
			html.EscapeString(l.FileName),
			html.EscapeString(l.DocumentType),
			html.EscapeString(l.Status))
	}
	greeting := "Hi"
	if riderName != "" {
		greeting = "Hi " + html.EscapeString(riderName)
	}

	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>Documents received</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #f4f5f7; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background: linear-gradient(135deg, #0ea5e9 0%%, #2563eb 100%%); padding: 40px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 24px; font-weight: 700; }
    .content { padding: 40px 30px; color: #1f2937; line-height: 1.6; font-size: 15px; }
    table { width: 100%%; border-collapse: collapse; margin: 20px 0; }
    td { padding: 8px; border-bottom: 1px solid #e5e7eb; }
    .status { text-transform: capitalize; color: #2563eb; }
    .footer { padding: 30px; text-align: center; color: #6b7280; font-size: 12px; border-top: 1px solid #e5e7eb; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Documents received</h1>
    </div>
    <div class="content">
      <p>%s,</p>
      <p>We stored the following documents. They stay pending until they are reviewed.</p>
      <table>
%s      </table>
      <p>Your QR code now references these documents. Show it at fuel stations and police checks.</p>
    </div>
    <div class="footer">
      <p>You are receiving this because documents were uploaded to your rider account.</p>
    </div>
  </div>
</body>
</html>`, greeting, rows.String())
}
