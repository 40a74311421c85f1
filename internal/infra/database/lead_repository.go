package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xavierca1/leadgen/internal/entity"
)

// DBTX é satisfeita por *sql.DB, *sql.Conn e *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type LeadRepository struct {
	DB      DBTX
	dialect dialect
}

var _ entity.LeadRepositoryInterface = (*LeadRepository)(nil)

const leadColumns = `
	id, business_name, category, address, city, phone, website, rating, reviews_count,
	email, instagram_handle, extraction_date, extraction_source,
	email_sent, email_sent_at, sender_email, whatsapp_sent, whatsapp_sent_at, instagram_sent,
	ai_personalized_message, response_status, response_text, response_date, notes`

func (r *LeadRepository) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return r.DB.ExecContext(ctx, r.dialect.rebind(query), args...)
}

func (r *LeadRepository) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return r.DB.QueryContext(ctx, r.dialect.rebind(query), args...)
}

func (r *LeadRepository) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return r.DB.QueryRowContext(ctx, r.dialect.rebind(query), args...)
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	if err := lead.Validate(); err != nil {
		return err
	}
	if lead.ExtractionDate.IsZero() {
		lead.ExtractionDate = time.Now().UTC()
	}
	if lead.ExtractionSource == "" {
		lead.ExtractionSource = entity.DefaultExtractionSource
	}
	if lead.ResponseStatus == "" {
		lead.ResponseStatus = entity.ResponseNone
	}

	query := `
		INSERT INTO leads (
			business_name, category, address, city, phone, website, rating, reviews_count,
			email, instagram_handle, extraction_date, extraction_source,
			email_sent, email_sent_at, sender_email, whatsapp_sent, whatsapp_sent_at, instagram_sent,
			ai_personalized_message, response_status, response_text, response_date, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	err := r.queryRow(ctx, query,
		strings.TrimSpace(lead.BusinessName),
		nullable(lead.Category),
		nullable(lead.Address),
		nullable(lead.City),
		nullable(lead.Phone),
		nullable(lead.Website),
		nullable(lead.Rating),
		nullable(lead.ReviewsCount),
		nullable(lead.Email),
		nullable(lead.InstagramHandle),
		lead.ExtractionDate.UTC(),
		lead.ExtractionSource,
		lead.EmailSent,
		nullableTime(lead.EmailSentAt),
		nullable(lead.SenderEmail),
		lead.WhatsAppSent,
		nullableTime(lead.WhatsAppSentAt),
		lead.InstagramSent,
		nullable(lead.AIPersonalizedMessage),
		lead.ResponseStatus,
		nullable(lead.ResponseText),
		nullableTime(lead.ResponseDate),
		nullable(lead.Notes),
	).Scan(&lead.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrLeadAlreadyExists
		}
		return fmt.Errorf("inserir lead: %w", err)
	}

	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	row := r.queryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = ?`, id)

	lead, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("buscar lead %d: %w", id, err)
	}
	return lead, nil
}

// FindByEmail faz match exato; usa o índice ix_leads_email.
func (r *LeadRepository) FindByEmail(ctx context.Context, email string) ([]*entity.Lead, error) {
	return r.list(ctx, `SELECT `+leadColumns+` FROM leads WHERE email = ? ORDER BY id`, email)
}

func (r *LeadRepository) UpdateOutreachStatus(ctx context.Context, id int64, update entity.OutreachUpdate) error {
	flagCol, atCol, err := outreachColumns(update.Channel)
	if err != nil {
		return err
	}

	sets := []string{flagCol + " = ?"}
	args := []any{update.Sent}

	if update.Channel.HasTimestamp() {
		var sentAt any
		if update.Sent {
			at := update.At
			if at.IsZero() {
				at = time.Now()
			}
			sentAt = at.UTC()
		}
		sets = append(sets, atCol+" = ?")
		args = append(args, sentAt)
	}

	if update.Channel == entity.ChannelEmail {
		var sender any
		if s := strings.TrimSpace(update.SenderEmail); s != "" {
			sender = s
		}
		sets = append(sets, "sender_email = COALESCE(?, sender_email)")
		args = append(args, sender)
	}

	args = append(args, id)
	res, err := r.exec(ctx, `UPDATE leads SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("atualizar contato %s do lead %d: %w", update.Channel, id, err)
	}

	return expectOneRow(res)
}

// outreachColumns devolve a flag e o timestamp do canal. Instagram não tem
// timestamp.
func outreachColumns(ch entity.Channel) (flag, at string, err error) {
	switch ch {
	case entity.ChannelEmail:
		return "email_sent", "email_sent_at", nil
	case entity.ChannelWhatsApp:
		return "whatsapp_sent", "whatsapp_sent_at", nil
	case entity.ChannelInstagram:
		return "instagram_sent", "", nil
	}
	return "", "", entity.ErrInvalidChannel
}

func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	var (
		where []string
		args  []any
	)
	if city := strings.TrimSpace(filter.City); city != "" {
		where = append(where, "LOWER(city) = LOWER(?)")
		args = append(args, city)
	}
	switch filter.Status {
	case "":
	case entity.LeadStatusContacted:
		where = append(where, "email_sent = ?")
		args = append(args, true)
	case entity.LeadStatusPending:
		where = append(where, "email IS NOT NULL", "email_sent = ?")
		args = append(args, false)
	case entity.LeadStatusNoEmail:
		where = append(where, "email IS NULL")
	default:
		return nil, entity.ErrInvalidLeadStatus
	}

	query := `SELECT ` + leadColumns + ` FROM leads`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY extraction_date DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, clampLimit(filter.Limit), max(filter.Offset, 0))

	return r.list(ctx, query, args...)
}

// Search procura o termo no nome, email e cidade, sem diferenciar caixa.
func (r *LeadRepository) Search(ctx context.Context, term string, limit int) ([]*entity.Lead, error) {
	pattern := likeContains(strings.ToLower(strings.TrimSpace(term)))
	return r.list(ctx, `
		SELECT `+leadColumns+` FROM leads
		WHERE LOWER(business_name) LIKE ? ESCAPE '\'
		   OR LOWER(email) LIKE ? ESCAPE '\'
		   OR LOWER(city) LIKE ? ESCAPE '\'
		ORDER BY extraction_date DESC, id DESC
		LIMIT ?`,
		pattern, pattern, pattern, clampLimit(limit))
}

// Responded lista os leads que já responderam, mais recentes primeiro.
func (r *LeadRepository) Responded(ctx context.Context, limit int) ([]*entity.Lead, error) {
	return r.list(ctx, `
		SELECT `+leadColumns+` FROM leads
		WHERE response_status <> ?
		ORDER BY response_date IS NULL, response_date DESC, id DESC
		LIMIT ?`,
		entity.ResponseNone, clampLimit(limit))
}

// likeContains escapa % e _ do termo e o envolve em %...%. As queries usam
// ESCAPE '\'.
func likeContains(term string) string {
	term = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + term + "%"
}

func (r *LeadRepository) UpdateResponse(ctx context.Context, id int64, status, text string) error {
	if !entity.IsValidResponseStatus(status) {
		return entity.ErrInvalidResponseStatus
	}

	var responseText, responseDate any
	if status != entity.ResponseNone {
		responseDate = time.Now().UTC()
		if t := strings.TrimSpace(text); t != "" {
			responseText = t
		}
	}

	res, err := r.exec(ctx,
		`UPDATE leads SET response_status = ?, response_text = ?, response_date = ? WHERE id = ?`,
		status, responseText, responseDate, id)
	if err != nil {
		return fmt.Errorf("atualizar resposta do lead %d: %w", id, err)
	}
	return expectOneRow(res)
}

func (r *LeadRepository) UpdateNotes(ctx context.Context, id int64, notes string) error {
	var value any
	if n := strings.TrimSpace(notes); n != "" {
		value = n
	}
	res, err := r.exec(ctx, `UPDATE leads SET notes = ? WHERE id = ?`, value, id)
	if err != nil {
		return fmt.Errorf("atualizar notas do lead %d: %w", id, err)
	}
	return expectOneRow(res)
}

func (r *LeadRepository) SetAIMessage(ctx context.Context, id int64, message string) error {
	var value any
	if m := strings.TrimSpace(message); m != "" {
		value = m
	}
	res, err := r.exec(ctx, `UPDATE leads SET ai_personalized_message = ? WHERE id = ?`, value, id)
	if err != nil {
		return fmt.Errorf("salvar mensagem do lead %d: %w", id, err)
	}
	return expectOneRow(res)
}

func (r *LeadRepository) Stats(ctx context.Context, since time.Time) (*entity.LeadStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN extraction_date >= ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN email IS NOT NULL THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN phone IS NOT NULL AND phone <> '' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN ai_personalized_message IS NOT NULL THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN email_sent THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN whatsapp_sent THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN instagram_sent THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN email IS NOT NULL AND NOT email_sent THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN response_status <> 'none' THEN 1 ELSE 0 END), 0)
		FROM leads
	`

	var s entity.LeadStats
	err := r.queryRow(ctx, query, since.UTC()).Scan(
		&s.TotalLeads,
		&s.LeadsToday,
		&s.WithEmail,
		&s.WithPhone,
		&s.AIGenerated,
		&s.EmailsSent,
		&s.WhatsAppSent,
		&s.InstagramSent,
		&s.PendingContact,
		&s.Responded,
	)
	if err != nil {
		return nil, fmt.Errorf("calcular estatísticas: %w", err)
	}
	return &s, nil
}

func (r *LeadRepository) CityStats(ctx context.Context, limit int) ([]entity.GroupCount, error) {
	return r.groupCounts(ctx, "city", limit)
}

func (r *LeadRepository) CategoryStats(ctx context.Context, limit int) ([]entity.GroupCount, error) {
	return r.groupCounts(ctx, "category", limit)
}

// column vem só de CityStats/CategoryStats, nunca do usuário.
func (r *LeadRepository) groupCounts(ctx context.Context, column string, limit int) ([]entity.GroupCount, error) {
	query := fmt.Sprintf(`
		SELECT %[1]s, COUNT(*), COALESCE(SUM(CASE WHEN email IS NOT NULL THEN 1 ELSE 0 END), 0)
		FROM leads
		WHERE %[1]s IS NOT NULL AND %[1]s <> ''
		GROUP BY %[1]s
		ORDER BY COUNT(*) DESC, %[1]s
		LIMIT ?`, column)

	rows, err := r.query(ctx, query, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("agrupar por %s: %w", column, err)
	}
	defer rows.Close()

	var out []entity.GroupCount
	for rows.Next() {
		var g entity.GroupCount
		if err := rows.Scan(&g.Name, &g.Count, &g.WithEmail); err != nil {
			return nil, fmt.Errorf("ler agrupamento por %s: %w", column, err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Activity devolve a contagem diária dos últimos days dias com leads,
// do mais recente para o mais antigo.
func (r *LeadRepository) Activity(ctx context.Context, days int) ([]entity.DailyActivity, error) {
	if days <= 0 {
		days = 7
	}
	day := r.dialect.dateOf("extraction_date")
	query := fmt.Sprintf(`
		SELECT %[1]s AS day,
			COUNT(*),
			COALESCE(SUM(CASE WHEN email IS NOT NULL THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN email_sent THEN 1 ELSE 0 END), 0)
		FROM leads
		GROUP BY %[1]s
		ORDER BY day DESC
		LIMIT ?`, day)

	rows, err := r.query(ctx, query, min(days, 366))
	if err != nil {
		return nil, fmt.Errorf("calcular atividade: %w", err)
	}
	defer rows.Close()

	out := []entity.DailyActivity{}
	for rows.Next() {
		var a entity.DailyActivity
		if err := rows.Scan(&a.Date, &a.Extracted, &a.EmailsFound, &a.Contacted); err != nil {
			return nil, fmt.Errorf("ler atividade: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ClearEmailsMatching apaga emails que contêm algum dos padrões (sem
// diferenciar caixa) e devolve quantas linhas mudaram.
func (r *LeadRepository) ClearEmailsMatching(ctx context.Context, patterns []string) (int64, error) {
	var total int64
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		res, err := r.exec(ctx, `UPDATE leads SET email = NULL WHERE LOWER(email) LIKE ? ESCAPE '\'`, likeContains(p))
		if err != nil {
			return total, fmt.Errorf("limpar emails %q: %w", p, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (r *LeadRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Lead, error) {
	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar leads: %w", err)
	}
	defer rows.Close()

	leads := []*entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("ler lead: %w", err)
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return 100
	case limit > 1000:
		return 1000
	}
	return limit
}
