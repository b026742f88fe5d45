package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// QuestionAnswer is one audited question of a completed exam: the prompt, the
// option the participant selected and the canonical correct option. The wire
// names follow the existing clients.
type QuestionAnswer struct {
	ID       int    `json:"id"`
	Prompt   string `json:"noiDung"`
	Selected string `json:"dapAn"`
	Correct  string `json:"dapAnDung"`
}

// QuestionAnswerList is the ordered question/answer sequence of an exam,
// stored as a single jsonb document column.
type QuestionAnswerList []QuestionAnswer

func (l QuestionAnswerList) Value() (driver.Value, error) {
	if l == nil {
		l = QuestionAnswerList{}
	}
	return json.Marshal(l)
}

func (l *QuestionAnswerList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into QuestionAnswerList", src)
	}
}

func (QuestionAnswerList) GormDataType() string {
	return "jsonb"
}
