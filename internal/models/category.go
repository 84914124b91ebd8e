package models

type Category struct {
	Base
	Name string `gorm:"not null;index;size:100" json:"name" example:"Drama"`
}

func (Category) TableName() string {
	return "categories"
}
