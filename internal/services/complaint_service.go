package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ComplaintService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewComplaintService(db *gorm.DB) *ComplaintService {
	return &ComplaintService{db: db, now: time.Now}
}

// Create stores a complaint owned by ownerID. Every field except the image
// is required.
func (s *ComplaintService) Create(ownerID uuid.UUID, req *dto.CreateComplaintRequest) (*models.Complaint, error) {
	complaint := models.Complaint{
		Name:             strings.TrimSpace(string(req.Name)),
		Age:              int(req.Age),
		Gender:           strings.TrimSpace(string(req.Gender)),
		LastSeenLocation: strings.TrimSpace(string(req.LastSeenLocation)),
		DateMissing:      strings.TrimSpace(string(req.DateMissing)),
		ContactNumber:    strings.TrimSpace(string(req.ContactNumber)),
		Description:      strings.TrimSpace(string(req.Description)),
		Image:            string(req.Image),
		UserID:           ownerID,
		CreatedAt:        s.now(),
	}

	if err := validateComplaint(&complaint); err != nil {
		return nil, err
	}

	if err := s.db.Create(&complaint).Error; err != nil {
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}
	return &complaint, nil
}

// List returns every complaint, newest first.
func (s *ComplaintService) List() ([]models.Complaint, error) {
	complaints := []models.Complaint{}
	if err := s.db.Order("created_at DESC").Find(&complaints).Error; err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	return complaints, nil
}

func (s *ComplaintService) GetByID(id uuid.UUID) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := s.db.First(&complaint, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, fmt.Errorf("failed to fetch complaint: %w", err)
	}
	return &complaint, nil
}

// Delete removes the complaint if requesterID owns it.
func (s *ComplaintService) Delete(id, requesterID uuid.UUID) error {
	complaint, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if complaint.UserID != requesterID {
		return ErrNotComplaintOwner
	}

	result := s.db.Where("user_id = ?", requesterID).Delete(&models.Complaint{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete complaint: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrComplaintNotFound
	}
	return nil
}

func validateComplaint(c *models.Complaint) error {
	var missing []string
	if c.Name == "" {
		missing = append(missing, "name")
	}
	if c.Age <= 0 {
		missing = append(missing, "age")
	}
	if c.Gender == "" {
		missing = append(missing, "gender")
	}
	if c.LastSeenLocation == "" {
		missing = append(missing, "lastSeenLocation")
	}
	if c.DateMissing == "" {
		missing = append(missing, "dateMissing")
	}
	if c.ContactNumber == "" {
		missing = append(missing, "contactNumber")
	}
	if c.Description == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
