package catalog

import (
	"github.com/obelixq/obelixq/services/booking-service/internal/model"
	"github.com/shopspring/decimal"
)

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

var fixtureBusinesses = []model.Business{
	{
		ID: "1", Name: "Barbería El Corte Perfecto", Category: "barbershop",
		Phone: "+57 300 123 4567", Email: "contacto@corteperfecto.com",
		Address: "Calle 45 #23-15", City: "Bogotá",
		OpeningTime: "09:00", ClosingTime: "19:00",
		WorkingDays: append(append([]string{}, weekdays...), "saturday"),
		OwnerID:     "owner1", Active: true,
	},
	{
		ID: "2", Name: "Spa Relajación Total", Category: "spa",
		Phone: "+57 301 987 6543", Email: "info@sparelajacion.com",
		Address: "Carrera 15 #67-89", City: "Medellín",
		OpeningTime: "10:00", ClosingTime: "20:00",
		WorkingDays: append(append([]string{}, weekdays...), "saturday", "sunday"),
		OwnerID:     "owner2", Active: true,
	},
	{
		ID: "3", Name: "Abogados Pérez & Asociados", Category: "lawyer",
		Phone: "+57 302 456 7890", Email: "contacto@perezabogados.com",
		City: "Cali", OpeningTime: "08:00", ClosingTime: "18:00",
		WorkingDays: weekdays, OwnerID: "owner3", Active: true,
	},
	{
		ID: "4", Name: "Consultora Digital Pro", Category: "consultant",
		Phone: "+57 303 111 2222", Email: "hola@digitalpro.com",
		City: "Bogotá", OpeningTime: "09:00", ClosingTime: "17:00",
		WorkingDays: weekdays, OwnerID: "owner4", Active: true,
	},
	{
		ID: "5", Name: "Clínica Dental Sonrisa Perfecta", Category: "dentist",
		Phone: "+57 304 333 4444", Email: "citas@sonrisaperfecta.com",
		City: "Bogotá", OpeningTime: "08:00", ClosingTime: "18:00",
		WorkingDays: append(append([]string{}, weekdays...), "saturday"),
		OwnerID:     "owner5", Active: true,
	},
	{
		ID: "6", Name: "Psicología Integral", Category: "psychologist",
		Phone: "+57 305 555 6666", Email: "contacto@psicologiaintegral.com",
		City: "Medellín", OpeningTime: "09:00", ClosingTime: "19:00",
		WorkingDays: weekdays, OwnerID: "owner6", Active: true,
	},
}

var fixtureServices = []model.Service{
	{ID: "s1", BusinessID: "1", Name: "Corte de Cabello Clásico", Price: decimal.NewFromInt(25000), DurationMinutes: 30, Active: true},
	{ID: "s2", BusinessID: "1", Name: "Corte Moderno + Barba", Price: decimal.NewFromInt(45000), DurationMinutes: 60, Active: true},
	{ID: "s3", BusinessID: "1", Name: "Afeitado Clásico", Price: decimal.NewFromInt(30000), DurationMinutes: 45, Active: true},
	{ID: "s4", BusinessID: "2", Name: "Masaje Relajante", Price: decimal.NewFromInt(80000), DurationMinutes: 60, Active: true},
	{ID: "s5", BusinessID: "2", Name: "Masaje Terapéutico", Price: decimal.NewFromInt(100000), DurationMinutes: 90, Active: true},
	{ID: "s6", BusinessID: "2", Name: "Facial Hidratante", Price: decimal.NewFromInt(70000), DurationMinutes: 75, Active: true},
	{ID: "s7", BusinessID: "2", Name: "Paquete Spa Completo", Price: decimal.NewFromInt(180000), DurationMinutes: 180, Active: true},
	{ID: "s8", BusinessID: "3", Name: "Consulta Legal General", Price: decimal.NewFromInt(150000), DurationMinutes: 60, Active: true},
	{ID: "s9", BusinessID: "3", Name: "Redacción de Contratos", Price: decimal.NewFromInt(300000), DurationMinutes: 120, Active: true},
	{ID: "s10", BusinessID: "3", Name: "Representación Legal", Price: decimal.NewFromInt(500000), DurationMinutes: 180, Active: true},
	{ID: "s11", BusinessID: "4", Name: "Consultoría en Marketing Digital", Price: decimal.NewFromInt(200000), DurationMinutes: 90, Active: true},
	{ID: "s12", BusinessID: "4", Name: "Auditoría de Redes Sociales", Price: decimal.NewFromInt(250000), DurationMinutes: 120, Active: true},
	{ID: "s13", BusinessID: "4", Name: "Transformación Digital", Price: decimal.NewFromInt(800000), DurationMinutes: 240, Active: true},
	{ID: "s14", BusinessID: "5", Name: "Limpieza Dental", Price: decimal.NewFromInt(80000), DurationMinutes: 45, Active: true},
	{ID: "s15", BusinessID: "5", Name: "Blanqueamiento Dental", Price: decimal.NewFromInt(350000), DurationMinutes: 90, Active: true},
	{ID: "s16", BusinessID: "5", Name: "Consulta Odontológica", Price: decimal.NewFromInt(60000), DurationMinutes: 30, Active: true},
	{ID: "s17", BusinessID: "5", Name: "Ortodoncia - Valoración", Price: decimal.NewFromInt(100000), DurationMinutes: 60, Active: true},
	{ID: "s18", BusinessID: "6", Name: "Terapia Individual", Price: decimal.NewFromInt(120000), DurationMinutes: 60, Active: true},
}

var fixtureUsers = []model.User{
	{ID: "user1", FullName: "Juan Pérez", Email: "juan@example.com", Phone: "+57 300 123 4567"},
	{ID: "user2", FullName: "María García", Email: "maria@example.com", Phone: "+57 301 987 6543"},
}
