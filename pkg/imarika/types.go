package imarika

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Article struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	File    string `json:"file,omitempty"`
}

// ArticlePage is the paginated envelope returned by the articles listing.
type ArticlePage struct {
	Count    int       `json:"count,omitempty"`
	Next     *string   `json:"next,omitempty"`
	Previous *string   `json:"previous,omitempty"`
	Results  []Article `json:"results"`
}

type Event struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	EventDate   string `json:"event_date"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	Location    string `json:"location"`
	Status      string `json:"status,omitempty"`
	Images      Images `json:"images"`
}

// Images is a list of image URLs. The backend sends either bare URL strings
// or objects of the form {"image": "<url>"}; both decode to the URL.
type Images []string

func (imgs *Images) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*imgs = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Images, 0, len(raw))
	for i, entry := range raw {
		entry = bytes.TrimSpace(entry)
		if len(entry) > 0 && entry[0] == '"' {
			var s string
			if err := json.Unmarshal(entry, &s); err != nil {
				return err
			}
			out = append(out, s)
			continue
		}
		var obj struct {
			Image string `json:"image"`
		}
		if err := json.Unmarshal(entry, &obj); err != nil {
			return fmt.Errorf("images[%d]: %w", i, err)
		}
		out = append(out, obj.Image)
	}
	*imgs = out
	return nil
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type SuperuserStatus struct {
	IsSuperuser bool `json:"is_superuser"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Submission is a get-involved form (volunteer, donate, partner, sponsor).
type Submission struct {
	FormType  string `json:"form_type"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	MpesaCode string `json:"mpesa_code"`
}

type PartnerForm struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Message  string `json:"message"`
}

// SubmissionReceipt carries the optional confirmation text of a submission.
type SubmissionReceipt struct {
	Message string `json:"message,omitempty"`
}
