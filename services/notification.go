package services

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"

	"github.com/btbrandon/Orbital-2024/config"
	"github.com/btbrandon/Orbital-2024/models"
)

type NotificationService struct {
	fcm *messaging.Client
}

var notifService *NotificationService

func GetNotificationService() *NotificationService {
	if notifService == nil {
		notifService = &NotificationService{}
	}
	return notifService
}

// InitFirebase wires up the FCM client. Push is optional: a missing or bad
// credentials file logs a warning and the app keeps running email-only.
func InitFirebase(ctx context.Context) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(config.AppConfig.FirebaseCredPath))
	if err != nil {
		log.Println("⚠️  Firebase not configured, push notifications disabled:", err)
		return
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Println("⚠️  Firebase messaging unavailable:", err)
		return
	}

	GetNotificationService().fcm = client
	log.Println("✅ Firebase messaging initialized")
}

func (ns *NotificationService) sendPush(fcmToken string, title string, body string, data map[string]string) {
	if ns.fcm == nil || fcmToken == "" {
		return
	}

	msg := &messaging.Message{
		Token: fcmToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := ns.fcm.Send(context.Background(), msg); err != nil {
		log.Printf("❌ FCM send error: %v", err)
		return
	}
	log.Printf("✅ Push notification sent: %s", title)
}

func (ns *NotificationService) sendEmail(toEmail string, toName string, subject string, htmlBody string) {
	if config.AppConfig.SendGridAPIKey == "" {
		log.Printf("⚠️  SendGrid API key not set, skipping email to %s", toEmail)
		return
	}

	from := mail.NewEmail(config.AppConfig.AppName, config.AppConfig.SendGridFrom)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("❌ Email send error: %v", err)
		return
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		log.Printf("✅ Email sent to %s", toEmail)
	} else {
		log.Printf("⚠️  SendGrid returned status: %d", resp.StatusCode)
	}
}

// NotifyBillSplit tells the ower they picked up a share of a bill.
func (ns *NotificationService) NotifyBillSplit(ower models.User, payer models.User, amount decimal.Decimal) {
	title := fmt.Sprintf("%s split a bill with you", payer.Username)
	body := fmt.Sprintf("You owe %s $%s", payer.Username, amount.StringFixed(2))

	ns.sendPush(ower.FCMToken, title, body, map[string]string{
		"type": "bill_split",
	})

	htmlBody := fmt.Sprintf(
		"<p>Hi %s,</p><p><strong>%s</strong> added you to a bill on %s. Your share is <strong>$%s</strong>.</p>",
		ower.Username, payer.Username, config.AppConfig.AppName, amount.StringFixed(2),
	)
	ns.sendEmail(ower.Email, ower.Username, title, htmlBody)
}

// NotifyDebtSettled tells the ower their balance with the owee was cleared.
func (ns *NotificationService) NotifyDebtSettled(ower models.User, owee models.User, total decimal.Decimal) {
	title := fmt.Sprintf("%s settled your debt", owee.Username)
	body := fmt.Sprintf("Your $%s balance with %s is cleared", total.StringFixed(2), owee.Username)

	ns.sendPush(ower.FCMToken, title, body, map[string]string{
		"type": "debt_settled",
	})

	htmlBody := fmt.Sprintf(
		"<p>Hi %s,</p><p><strong>%s</strong> marked your <strong>$%s</strong> balance as settled.</p>",
		ower.Username, owee.Username, total.StringFixed(2),
	)
	ns.sendEmail(ower.Email, ower.Username, title, htmlBody)
}

// NotifyFriendRequest tells the addee someone wants to add them.
func (ns *NotificationService) NotifyFriendRequest(addee models.User, sender models.User) {
	title := fmt.Sprintf("%s sent you a friend request", sender.Username)

	ns.sendPush(addee.FCMToken, title, "Open the Friends tab to respond", map[string]string{
		"type": "friend_request",
	})

	htmlBody := fmt.Sprintf(
		"<p>Hi %s,</p><p><strong>%s</strong> wants to add you as a friend on %s.</p>",
		addee.Username, sender.Username, config.AppConfig.AppName,
	)
	ns.sendEmail(addee.Email, addee.Username, title, htmlBody)
}
