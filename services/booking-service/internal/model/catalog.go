package model

import "github.com/shopspring/decimal"

type Business struct {
	ID          string
	Name        string
	Description string
	Category    string
	Phone       string
	Email       string
	Address     string
	City        string
	OpeningTime string // "HH:MM", local wall clock
	ClosingTime string
	WorkingDays []string
	OwnerID     string
	Active      bool
}

type Service struct {
	ID              string
	BusinessID      string
	Name            string
	Description     string
	Price           decimal.Decimal // COP, whole pesos in the fixtures
	DurationMinutes int
	Active          bool
}

type User struct {
	ID       string
	FullName string
	Email    string
	Phone    string
}
