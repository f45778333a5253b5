package models

// Flagship — групповая поездка, основной продаваемый продукт.
// Даты приходят строками в том виде, в котором их хранит удалённый сервис.
type Flagship struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Destination string   `json:"destination"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Images      []string `json:"images"`
	TotalSeats  int      `json:"totalSeats"`
	Price       int      `json:"price"`
}

// FlagshipDraft хранит поездку, которую администратор заполняет по шагам.
// Все поля необязательны до отправки черновика.
type FlagshipDraft struct {
	Step        int      `json:"step"`
	Name        string   `json:"name,omitempty"`
	Destination string   `json:"destination,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	Images      []string `json:"images,omitempty"`
	TotalSeats  int      `json:"totalSeats,omitempty"`
	Price       int      `json:"price,omitempty"`
}

// DummyFlagshipDraft используется для приёма очередного шага черновика из JSON-запроса.
// Пустые поля не затирают уже заполненные.
type DummyFlagshipDraft struct {
	Step        int      `json:"step" validate:"gte=0,lte=10"`
	Name        string   `json:"name" validate:"omitempty,max=200"`
	Destination string   `json:"destination" validate:"omitempty,max=200"`
	StartDate   string   `json:"startDate" validate:"omitempty"`
	EndDate     string   `json:"endDate" validate:"omitempty"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
	TotalSeats  int      `json:"totalSeats" validate:"gte=0"`
	Price       int      `json:"price" validate:"gte=0"`
}

// Merge накладывает заполненные поля шага на черновик.
func (d FlagshipDraft) Merge(step DummyFlagshipDraft) FlagshipDraft {
	d.Step = step.Step
	if step.Name != "" {
		d.Name = step.Name
	}
	if step.Destination != "" {
		d.Destination = step.Destination
	}
	if step.StartDate != "" {
		d.StartDate = step.StartDate
	}
	if step.EndDate != "" {
		d.EndDate = step.EndDate
	}
	if len(step.Images) > 0 {
		d.Images = append([]string(nil), step.Images...)
	}
	if step.TotalSeats > 0 {
		d.TotalSeats = step.TotalSeats
	}
	if step.Price > 0 {
		d.Price = step.Price
	}
	return d
}

// NewFlagship — итоговая форма черновика, отправляемая в удалённый сервис.
type NewFlagship struct {
	Name        string   `json:"name" validate:"required"`
	Destination string   `json:"destination" validate:"required"`
	StartDate   string   `json:"startDate" validate:"required"`
	EndDate     string   `json:"endDate" validate:"required"`
	Images      []string `json:"images"`
	TotalSeats  int      `json:"totalSeats" validate:"required,gt=0"`
	Price       int      `json:"price" validate:"required,gt=0"`
}

// Finalize превращает черновик в запрос на создание поездки.
func (d FlagshipDraft) Finalize() NewFlagship {
	return NewFlagship{
		Name:        d.Name,
		Destination: d.Destination,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Images:      d.Images,
		TotalSeats:  d.TotalSeats,
		Price:       d.Price,
	}
}
