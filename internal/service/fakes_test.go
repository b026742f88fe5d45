package service_test

import (
	"time"

	"github.com/tuanvo/exam-portal/internal/model"
	"gorm.io/gorm"
)

// In-memory repositories mirroring the store's behavior, including the unique
// indexes on participant email and (participant, day).

type fakeParticipantRepo struct {
	participants map[string]*model.Participant
	nextID       uint
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{participants: make(map[string]*model.Participant)}
}

func (f *fakeParticipantRepo) Create(p *model.Participant) error {
	if _, ok := f.participants[p.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	f.nextID++
	p.ID = f.nextID
	stored := *p
	f.participants[p.Email] = &stored
	return nil
}

func (f *fakeParticipantRepo) FindByEmail(email string) (*model.Participant, error) {
	p, ok := f.participants[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeParticipantRepo) FindByID(id uint) (*model.Participant, error) {
	for _, p := range f.participants {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeExamRepo struct {
	exams        []*model.Exam
	participants *fakeParticipantRepo
	nextID       uint
}

func newFakeExamRepo(participants *fakeParticipantRepo) *fakeExamRepo {
	return &fakeExamRepo{participants: participants}
}

func (f *fakeExamRepo) Create(exam *model.Exam) error {
	for _, e := range f.exams {
		if e.ParticipantID == exam.ParticipantID && e.ExamDay == exam.ExamDay {
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextID++
	exam.ID = f.nextID
	stored := *exam
	f.exams = append(f.exams, &stored)
	return nil
}

func (f *fakeExamRepo) Update(exam *model.Exam) error {
	for i, e := range f.exams {
		if e.ID == exam.ID {
			stored := *exam
			f.exams[i] = &stored
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeExamRepo) FindByID(id uint) (*model.Exam, error) {
	for _, e := range f.exams {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeExamRepo) FindLatestByParticipant(participantID uint) (*model.Exam, error) {
	var latest *model.Exam
	for _, e := range f.exams {
		if e.ParticipantID != participantID {
			continue
		}
		if latest == nil || e.EnteredAt.After(latest.EnteredAt) {
			latest = e
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeExamRepo) FindByParticipantInWindow(participantID uint, from, to time.Time) (*model.Exam, error) {
	for _, e := range f.exams {
		if e.ParticipantID == participantID && !e.EnteredAt.Before(from) && !e.EnteredAt.After(to) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeExamRepo) FindAllWithParticipants() ([]model.Exam, error) {
	out := make([]model.Exam, 0, len(f.exams))
	for _, e := range f.exams {
		cp := *e
		f.attachParticipant(&cp)
		out = append(out, cp)
	}
	return out, nil
}

func (f *fakeExamRepo) FindAllInWindow(from, to time.Time) ([]model.Exam, error) {
	var out []model.Exam
	for _, e := range f.exams {
		if !e.EnteredAt.Before(from) && !e.EnteredAt.After(to) {
			cp := *e
			f.attachParticipant(&cp)
			out = append(out, cp)
		}
	}
	return out, nil
}

func (f *fakeExamRepo) attachParticipant(exam *model.Exam) {
	for _, p := range f.participants.participants {
		if p.ID == exam.ParticipantID {
			exam.Participant = *p
			return
		}
	}
}

// fakeMailer captures outbound mail instead of dialing SMTP.
type fakeMailer struct {
	to       []string
	subjects []string
	texts    []string
	htmls    []string
	err      error
}

func (f *fakeMailer) Send(to, subject, textBody, htmlBody string) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, to)
	f.subjects = append(f.subjects, subject)
	f.texts = append(f.texts, textBody)
	f.htmls = append(f.htmls, htmlBody)
	return nil
}
