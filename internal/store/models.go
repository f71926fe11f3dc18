package store

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StringArray is a custom type for PostgreSQL text[] arrays
type StringArray []string

// Value implements the driver.Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, item := range a {
		if i > 0 {
			b.WriteByte(',')
		}
		// Every element is quoted so commas, spaces and braces survive the round trip.
		b.WriteByte('"')
		for _, r := range item {
			if r == '"' || r == '\\' {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
		b.WriteByte('"')
	}
	b.WriteByte('}')
	return b.String(), nil
}

// Scan implements the sql.Scanner interface for StringArray
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}

	var str string
	switch v := value.(type) {
	case []byte:
		str = string(v)
	case string:
		str = v
	case []string:
		*a = append(StringArray{}, v...)
		return nil
	default:
		return fmt.Errorf("unsupported type for StringArray: %T", value)
	}

	parsed, err := parseArrayLiteral(str)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// parseArrayLiteral decodes a one-dimensional PostgreSQL array literal.
func parseArrayLiteral(str string) (StringArray, error) {
	str = strings.TrimSpace(str)
	if len(str) < 2 || str[0] != '{' || str[len(str)-1] != '}' {
		return nil, fmt.Errorf("invalid array literal %q", str)
	}
	body := str[1 : len(str)-1]
	result := StringArray{}
	if body == "" {
		return result, nil
	}

	var (
		current  strings.Builder
		quoted   bool
		inQuotes bool
		escaped  bool
	)
	flush := func() {
		item := current.String()
		if !quoted {
			item = strings.TrimSpace(item)
		}
		result = append(result, item)
		current.Reset()
		quoted = false
	}

	for _, r := range body {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			inQuotes = !inQuotes
			quoted = true
		case r == ',' && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	if inQuotes || escaped {
		return nil, fmt.Errorf("unterminated array literal %q", str)
	}
	flush()
	return result, nil
}

// Call is one recorded advisor-client conversation and its processing outcome.
type Call struct {
	ID               uuid.UUID   `db:"id" json:"id"`
	AdvisorID        uuid.UUID   `db:"advisor_id" json:"advisor_id"`
	ClientID         *uuid.UUID  `db:"client_id" json:"client_id,omitempty"`
	ClientName       *string     `db:"client_name" json:"client_name,omitempty"`
	Status           CallStatus  `db:"status" json:"status"`
	Transcript       string      `db:"transcript" json:"transcript"`
	Summary          string      `db:"summary" json:"summary"`
	Goals            StringArray `db:"goals" json:"goals"`
	Language         string      `db:"language" json:"language"`
	ComplianceFlags  StringArray `db:"compliance_flags" json:"compliance_flags"`
	ComplianceStatus *string     `db:"compliance_status" json:"compliance_status,omitempty"`
	ErrorDetail      *string     `db:"error_detail" json:"error_detail,omitempty"`
	AnalysisSource   *string     `db:"analysis_source" json:"analysis_source,omitempty"`
	AudioFilename    string      `db:"audio_filename" json:"audio_filename"`
	AudioPath        string      `db:"audio_path" json:"-"`
	CreatedAt        time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time   `db:"updated_at" json:"updated_at"`
}

// Client is an advisor's customer.
type Client struct {
	ID        uuid.UUID `db:"id" json:"id"`
	AdvisorID uuid.UUID `db:"advisor_id" json:"advisor_id"`
	Name      string    `db:"name" json:"name"`
	Email     *string   `db:"email" json:"email,omitempty"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Summary is an advisor-reviewed write-up of a call, including the SIP discussed
// and how the client responded.
type Summary struct {
	ID             uuid.UUID   `db:"id" json:"id"`
	CallID         uuid.UUID   `db:"call_id" json:"call_id"`
	AdvisorID      uuid.UUID   `db:"advisor_id" json:"advisor_id"`
	Summary        string      `db:"summary" json:"summary"`
	Goals          StringArray `db:"goals" json:"goals"`
	RiskLevel      *string     `db:"risk_level" json:"risk_level,omitempty"`
	SIPType        *string     `db:"sip_type" json:"sip_type,omitempty"`
	SIPAmount      *float64    `db:"sip_amount" json:"sip_amount,omitempty"`
	SIPCategory    *string     `db:"sip_category" json:"sip_category,omitempty"`
	RiskExplained  *bool       `db:"risk_explained" json:"risk_explained,omitempty"`
	ClientResponse *string     `db:"client_response" json:"client_response,omitempty"`
	Compliance     *string     `db:"compliance" json:"compliance,omitempty"`
	CreatedAt      time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at" json:"updated_at"`
}

// Profile is an authenticated user of the service.
type Profile struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
