package mail

type AlertSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
}
