// Package views строит модели представления (карточки) для страниц портала.
// Карточки не ходят в сеть и не меняют записи: они только раскладывают
// готовую запись по полям для отображения и хранят крошечное локальное состояние.
package views

// PlaceholderImage подставляется, если у поездки нет изображений.
const PlaceholderImage = "/static/placeholder-flagship.jpg"

// Carousel хранит позицию в непустом упорядоченном списке изображений.
// Индекс всегда находится в диапазоне [0, len(images)).
type Carousel struct {
	images []string
	index  int
}

// NewCarousel создаёт карусель. Пустой список заменяется одной заглушкой.
func NewCarousel(images []string) *Carousel {
	if len(images) == 0 {
		return &Carousel{images: []string{PlaceholderImage}}
	}
	return &Carousel{images: append([]string(nil), images...)}
}

// Next переходит к следующему изображению по кругу.
func (c *Carousel) Next() {
	c.index = (c.index + 1) % len(c.images)
}

// Prev переходит к предыдущему изображению, с нуля — на последнее.
func (c *Carousel) Prev() {
	if c.index == 0 {
		c.index = len(c.images) - 1
		return
	}
	c.index--
}

// Index возвращает текущую позицию.
func (c *Carousel) Index() int { return c.index }

// Len возвращает количество изображений.
func (c *Carousel) Len() int { return len(c.images) }

// Current возвращает адрес текущего изображения.
func (c *Carousel) Current() string { return c.images[c.index] }

// Images возвращает копию списка изображений.
func (c *Carousel) Images() []string { return append([]string(nil), c.images...) }
