package mail

// SMTPSettings são os dados de login no relay usado pelo mailer externo.
type SMTPSettings struct {
	Host     string
	Port     int
	User     string
	Password string
}
