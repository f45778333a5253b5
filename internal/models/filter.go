package models

// Filter — выбранный пользователем фильтр списка (например, город или статус).
type Filter struct {
	Key    string   `json:"key" validate:"required,max=50"`
	Values []string `json:"values" validate:"dive,max=100"`
}

// DummyFilters используется для приёма списка фильтров из JSON-запроса.
type DummyFilters struct {
	Filters []Filter `json:"filters" validate:"dive"`
}
