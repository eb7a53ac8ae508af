package dto

import "github.com/ahmetcoskunkizilkaya/lostperson-api/internal/models"

// CreateComplaintRequest accepts numbers where text is expected and numeric
// strings for age, so type mismatches surface as missing fields.
type CreateComplaintRequest struct {
	Name             Text  `json:"name"`
	Age              Count `json:"age"`
	Gender           Text  `json:"gender"`
	LastSeenLocation Text  `json:"lastSeenLocation"`
	DateMissing      Text  `json:"dateMissing"`
	ContactNumber    Text  `json:"contactNumber"`
	Description      Text  `json:"description"`
	Image            Text  `json:"image,omitempty"`
}

type ComplaintResponse struct {
	Message   string            `json:"message"`
	Complaint *models.Complaint `json:"complaint"`
}

type UploadResponse struct {
	Message string `json:"message"`
	Key     string `json:"key,omitempty"`
}
