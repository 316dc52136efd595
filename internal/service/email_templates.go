package service

import "fmt"

func uploadNotificationTemplate(p UploadNotificationParams, documentsURL, appName string) (string, string) {
	subject := fmt.Sprintf("New document from %s", p.ClientName)
	body := fmt.Sprintf(`Hi %s,

%s uploaded a new document to %s via %s:

File: %s (%s)
Filed under: %s

View it here: %s

Best,
The %s Team`, p.RecipientName, p.ClientName, p.OrganizationName, p.PortalName, p.FileName, p.SizeDisplay, p.FolderDisplay, documentsURL, appName)

	return subject, body
}

func uploadConfirmationTemplate(p UploadConfirmationParams, appName string) (string, string) {
	subject := fmt.Sprintf("We received your document: %s", p.FileName)
	body := fmt.Sprintf(`Hi %s,

Your document "%s" was uploaded successfully to %s.

It has been delivered securely and the team has been notified. No further action is needed.

Best,
The %s Team`, p.ClientName, p.FileName, p.PortalName, appName)

	return subject, body
}
