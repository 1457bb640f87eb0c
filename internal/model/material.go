package model

// swagger:model Material
type Material struct {
	UUIDBase
	Title        string `gorm:"size:255;not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	Grade        string `gorm:"size:10;default:'4'" json:"grade"` // tingkat kelas
	SummaryURL   string `gorm:"size:255" json:"summaryUrl,omitempty"`
	FullURL      string `gorm:"size:255" json:"fullUrl,omitempty"`
	VideoURL     string `gorm:"size:255" json:"videoUrl,omitempty"`
	ThumbnailURL string `gorm:"size:255" json:"thumbnailUrl,omitempty"`
	Position     int    `gorm:"not null;default:0;index" json:"position"` // urutan materi
	IsActive     bool   `gorm:"default:true" json:"isActive"`
}

func (Material) TableName() string {
	return "materials"
}
