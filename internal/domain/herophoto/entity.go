package herophoto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultAlt      = "Hero Photo"
	DefaultPosition = 50
)

// HeroPhoto is one image of the landing-page carousel. PositionX and
// PositionY are the CSS focal point in percent.
type HeroPhoto struct {
	ID        int64     `db:"id" json:"id"`
	Image     string    `db:"image" json:"image"`
	Alt       string    `db:"alt" json:"alt"`
	PositionX Position  `db:"position_x" json:"positionX"`
	PositionY Position  `db:"position_y" json:"positionY"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	Order     int       `db:"sort_order" json:"order"`
}

func (p HeroPhoto) RecordID() int64 { return p.ID }
func (p HeroPhoto) SortOrder() int  { return p.Order }

// UnmarshalJSON defaults positions the record leaves out, as older data
// files have no positionX/positionY at all.
func (p *HeroPhoto) UnmarshalJSON(data []byte) error {
	type plain HeroPhoto
	v := plain{PositionX: DefaultPosition, PositionY: DefaultPosition}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = HeroPhoto(v)
	return nil
}

// Position is a focal-point percentage. Older data files store it as a
// string, so both "30" and 30 decode. null and "" mean the default.
type Position int

func (p *Position) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = DefaultPosition
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*p = Position(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("position must be a number: %s", data)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*p = DefaultPosition
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("position must be a number: %q", s)
	}
	*p = Position(n)
	return nil
}
