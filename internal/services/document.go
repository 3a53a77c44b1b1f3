package services

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/nazaninghn/sustindex/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxDocumentSize caps evidence uploads at 10MB.
const MaxDocumentSize = 10 * 1024 * 1024

// Storage is the file-storage boundary: bytes in, stored reference and
// byte count out. The service records size and the reference, never the
// content.
type Storage interface {
	Save(name string, r io.Reader) (string, int64, error)
	Remove(name string) error
}

// LocalStorage writes uploads to a directory served statically.
type LocalStorage struct {
	Dir string
}

func (l LocalStorage) Save(name string, r io.Reader) (string, int64, error) {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return "", 0, err
	}
	path := filepath.Join(l.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		return "", 0, err
	}
	return "/uploads/" + name, n, nil
}

func (l LocalStorage) Remove(name string) error {
	return os.Remove(filepath.Join(l.Dir, name))
}

type DocumentService struct {
	db      *gorm.DB
	storage Storage
}

func NewDocumentService(db *gorm.DB, storage Storage) *DocumentService {
	return &DocumentService{db: db, storage: storage}
}

// Upload attaches an evidence file to the attempt's answer for the given
// question, creating an empty answer row when the user uploads before
// selecting a choice. Documents never affect scoring.
func (s *DocumentService) Upload(attemptID, userID, questionID uint, title string, size int64, file io.Reader, originalName string) (*models.UserDocument, error) {
	var attempt models.QuestionnaireAttempt
	if err := s.db.First(&attempt, attemptID).Error; err != nil {
		return nil, models.ErrAttemptNotFound
	}
	if attempt.UserID != userID {
		return nil, models.ErrForeignAttempt
	}
	if attempt.IsCompleted {
		return nil, models.ErrAttemptCompleted
	}
	if size > MaxDocumentSize {
		return nil, models.ErrFileTooLarge
	}

	var question models.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		return nil, models.ErrQuestionNotFound
	}

	var answer models.Answer
	err := s.db.Where("attempt_id = ? AND question_id = ?", attemptID, questionID).
		First(&answer).Error
	if err != nil {
		answer = models.Answer{
			AttemptID:  attemptID,
			QuestionID: questionID,
			AnsweredAt: time.Now(),
		}
		if err := s.db.Create(&answer).Error; err != nil {
			return nil, err
		}
	}

	// The declared size is checked above, but the stream itself is capped
	// too: a body larger than the cap is rejected regardless of what the
	// client claimed.
	stored := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(originalName))
	path, written, err := s.storage.Save(stored, io.LimitReader(file, MaxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if written > MaxDocumentSize {
		if err := s.storage.Remove(stored); err != nil {
			log.Printf("documents: remove oversize upload %s: %v", stored, err)
		}
		return nil, models.ErrFileTooLarge
	}

	if title == "" {
		title = originalName
	}
	doc := models.UserDocument{
		AnswerID:   answer.ID,
		Title:      title,
		FilePath:   path,
		FileSize:   written,
		UploadedAt: time.Now(),
	}
	if err := s.db.Create(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// CountForAttempt reports how many documents back the attempt's answers.
func (s *DocumentService) CountForAttempt(attemptID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.UserDocument{}).
		Where("answer_id IN (?)", s.db.Model(&models.Answer{}).
			Select("id").
			Where("attempt_id = ?", attemptID)).
		Count(&count).Error
	return count, err
}
