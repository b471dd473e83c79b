package message

// TimestampLayout renders the submission time for the admin inbox
const TimestampLayout = "1/2/2006, 3:04:05 PM"

// Message is a contact-form submission
type Message struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Email     string `db:"email" json:"email"`
	Message   string `db:"message" json:"message"`
	Timestamp string `db:"timestamp" json:"timestamp"`
	Read      bool   `db:"read" json:"read"`
}

func (m Message) RecordID() int64 { return m.ID }
