package views

import (
	"github.com/magabrotheeeer/flagship-portal/internal/lib/datefmt"
	"github.com/magabrotheeeer/flagship-portal/internal/models"
)

// Target — элемент карточки, по которому пришёл клик.
type Target int

const (
	// TargetCard — клик по самой карточке, ведёт на страницу поездки.
	TargetCard Target = iota
	// TargetNextImage — кнопка "вперёд" карусели.
	TargetNextImage
	// TargetPrevImage — кнопка "назад" карусели.
	TargetPrevImage
)

// Navigator вызывается при переходе на страницу поездки.
type Navigator func(flagshipID string)

// FlagshipCard — карточка поездки в списке.
type FlagshipCard struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Destination string   `json:"destination"`
	DateLabel   string   `json:"dateLabel"`
	Price       int      `json:"price"`
	TotalSeats  int      `json:"totalSeats"`
	Images      []string `json:"images"`
	ImageIndex  int      `json:"imageIndex"`
	Image       string   `json:"image"`
	Link        string   `json:"link"`

	carousel *Carousel
	navigate Navigator
}

// NewFlagshipCard строит карточку по записи поездки. Если даты не разбираются,
// подпись дат остаётся пустой.
func NewFlagshipCard(f models.Flagship, navigate Navigator) *FlagshipCard {
	label, err := datefmt.FormatRange(f.StartDate, f.EndDate)
	if err != nil {
		label = ""
	}
	c := &FlagshipCard{
		ID:          f.ID,
		Name:        f.Name,
		Destination: f.Destination,
		DateLabel:   label,
		Price:       f.Price,
		TotalSeats:  f.TotalSeats,
		Link:        "/flagships/" + f.ID,
		carousel:    NewCarousel(f.Images),
		navigate:    navigate,
	}
	c.sync()
	return c
}

// Dispatch обрабатывает клик. Кнопки карусели двигают изображение и не
// доходят до обработчика карточки; клик по карточке вызывает навигацию ровно один раз.
// Возвращает true, если произошла навигация.
func (c *FlagshipCard) Dispatch(target Target) bool {
	switch target {
	case TargetNextImage:
		c.carousel.Next()
		c.sync()
		return false
	case TargetPrevImage:
		c.carousel.Prev()
		c.sync()
		return false
	case TargetCard:
		if c.navigate != nil {
			c.navigate(c.ID)
		}
		return true
	}
	return false
}

// Carousel возвращает карусель карточки.
func (c *FlagshipCard) Carousel() *Carousel { return c.carousel }

func (c *FlagshipCard) sync() {
	c.Images = c.carousel.Images()
	c.ImageIndex = c.carousel.Index()
	c.Image = c.carousel.Current()
}

// FlagshipCards строит карточки в том порядке, в котором пришли записи.
func FlagshipCards(flagships []models.Flagship) []*FlagshipCard {
	cards := make([]*FlagshipCard, 0, len(flagships))
	for _, f := range flagships {
		cards = append(cards, NewFlagshipCard(f, nil))
	}
	return cards
}
