package dispatch

import "fmt"

// Fixed Turkish notification/email templates for company approval notices.
const (
	approvedPushTitle = "✅ Başvurunuz Onaylandı!"
	approvedPushBody  = "Tebrikler! Firmanız onaylandı. Artık kampanyalarınızı yayınlayabilirsiniz."

	rejectedPushTitle = "❌ Başvurunuz Reddedildi"
	rejectedPushBody  = "Maalesef firma başvurunuz onaylanmadı."

	approvedEmailSubject = "✅ Başvurunuz Onaylandı!"
	rejectedEmailSubject = "❌ Başvurunuz Reddedildi"
)

func approvedEmailBody(companyName string) string {
	return fmt.Sprintf(`<h2>Tebrikler!</h2>
<p><b>%s</b> firmanızın başvurusu onaylandı. YakalaHadi üzerinden kampanyalarınızı yayınlamaya başlayabilirsiniz.</p>`, companyName)
}

func rejectedEmailBody(companyName, reason string) string {
	body := fmt.Sprintf(`<h2>Başvurunuz Reddedildi</h2>
<p>Maalesef <b>%s</b> firmanızın başvurusu onaylanmadı.</p>`, companyName)
	if reason != "" {
		body += fmt.Sprintf("<p>Gerekçe: %s</p>", reason)
	}
	return body
}
