package kuha

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Label accepts either a JSON string or number and keeps its textual form.
// The backend serialises menu item categories as names on some endpoints and
// as primary keys on others.
type Label string

func (l *Label) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*l = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*l = Label(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return err
	}
	*l = Label(n.String())
	return nil
}

func (l Label) String() string {
	return strings.TrimSpace(string(l))
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Restaurant struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Logo        string     `json:"logo"`
	Categories  []Category `json:"categories,omitempty"`
}

type MenuItem struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
	Category Label           `json:"category"`
}

type OrderItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	ImageURL string          `json:"image_url"`
}

type OrderRequest struct {
	Name    string      `json:"name"`
	Phone   string      `json:"phone"`
	Address string      `json:"address"`
	Notes   string      `json:"notes"`
	Items   []OrderItem `json:"items"`
}

type Order struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	Address   string      `json:"address"`
	Notes     string      `json:"notes"`
	Items     []OrderItem `json:"items"`
	Completed bool        `json:"completed"`
	CreatedAt string      `json:"created_at,omitempty"`
}

type MessageRequest struct {
	Name    string `json:"name"`
	Tell    string `json:"tell"`
	Message string `json:"message"`
}

type Message struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Tell      string `json:"tell"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at,omitempty"`
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AdminLoginResponse struct {
	IsAdmin  bool   `json:"is_admin"`
	Username string `json:"username"`
}
