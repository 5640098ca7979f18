package canvas

import (
	"encoding/json"
	"fmt"
	"time"
)

// itemRecord is the stored form of an item. Kind-specific fields are
// pointers so only the fields of the item's own kind are written, and so
// absent fields can fall back to their defaults when read.
type itemRecord struct {
	ID       string  `json:"id,omitempty"`
	Type     Kind    `json:"type"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
	Scale    float64 `json:"scale"`

	ImagePath *string `json:"imagePath,omitempty"`

	Text       *string  `json:"text,omitempty"`
	TextColor  *Color   `json:"textColor,omitempty"`
	TextSize   *float64 `json:"textSize,omitempty"`
	FontFamily *string  `json:"fontFamily,omitempty"`
	IsBold     *bool    `json:"isBold,omitempty"`
	IsItalic   *bool    `json:"isItalic,omitempty"`

	DoodlePath  *string  `json:"doodlePath,omitempty"`
	StrokeColor *Color   `json:"strokeColor,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty"`

	BackgroundColor Color   `json:"backgroundColor"`
	HasBorder       bool    `json:"hasBorder"`
	BorderColor     Color   `json:"borderColor"`
	BorderWidth     float64 `json:"borderWidth"`
	CornerRadius    float64 `json:"cornerRadius"`
}

func toRecord(it *Item) (itemRecord, error) {
	r := itemRecord{
		ID:              it.ID,
		Type:            it.Kind(),
		X:               it.X,
		Y:               it.Y,
		Width:           it.Width,
		Height:          it.Height,
		Rotation:        it.Rotation,
		Scale:           it.Scale,
		BackgroundColor: it.Background,
		HasBorder:       it.HasBorder,
		BorderColor:     it.BorderColor,
		BorderWidth:     it.BorderWidth,
		CornerRadius:    it.CornerRadius,
	}
	switch c := it.Content.(type) {
	case *ImageContent:
		r.ImagePath = &c.Path
	case *TextContent:
		r.Text = &c.Text
		r.TextColor = &c.Color
		r.TextSize = &c.Size
		r.FontFamily = &c.Family
		r.IsBold = &c.Bold
		r.IsItalic = &c.Italic
	case *DoodleContent:
		r.DoodlePath = &c.Path
		r.StrokeColor = &c.StrokeColor
		r.StrokeWidth = &c.StrokeWidth
	default:
		return r, fmt.Errorf("canvas: item %s has no content", it.ID)
	}
	return r, nil
}

func str(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func num(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func flag(p *bool) bool {
	return p != nil && *p
}

func colour(p *Color, def Color) Color {
	if p == nil {
		return def
	}
	return *p
}

func fromRecord(r itemRecord) (*Item, error) {
	it := &Item{
		ID:           r.ID,
		X:            r.X,
		Y:            r.Y,
		Width:        r.Width,
		Height:       r.Height,
		Rotation:     r.Rotation,
		Scale:        r.Scale,
		Background:   r.BackgroundColor,
		HasBorder:    r.HasBorder,
		BorderColor:  r.BorderColor,
		BorderWidth:  r.BorderWidth,
		CornerRadius: r.CornerRadius,
	}
	switch r.Type {
	case KindImage:
		it.Content = &ImageContent{Path: str(r.ImagePath, "")}
	case KindText:
		it.Content = &TextContent{
			Text:   str(r.Text, ""),
			Color:  colour(r.TextColor, DefaultTextColor),
			Size:   num(r.TextSize, 16),
			Family: str(r.FontFamily, "serif"),
			Bold:   flag(r.IsBold),
			Italic: flag(r.IsItalic),
		}
	case KindDoodle:
		it.Content = &DoodleContent{
			Path:        str(r.DoodlePath, ""),
			StrokeColor: colour(r.StrokeColor, DefaultStrokeColor),
			StrokeWidth: num(r.StrokeWidth, 3),
		}
	default:
		return nil, fmt.Errorf("canvas: unknown item type %d", r.Type)
	}
	return it, nil
}

// defaultRecord holds the values used for fields a stored item omits.
func defaultRecord() itemRecord {
	return itemRecord{
		Scale:       1,
		BorderColor: DefaultBorderColor,
		BorderWidth: 2,
	}
}

// MarshalItem encodes it as a JSON item record.
func MarshalItem(it *Item) ([]byte, error) {
	r, err := toRecord(it)
	if err != nil {
		return nil, err
	}
	return json.Marshal(r)
}

// UnmarshalItem decodes a JSON item record. Missing optional fields take
// the defaults a new item of the same kind would have.
func UnmarshalItem(data []byte) (*Item, error) {
	r := defaultRecord()
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("canvas: decode item: %w", err)
	}
	return fromRecord(r)
}

type pageRecord struct {
	ID                  int64             `json:"id"`
	Title               string            `json:"title"`
	CreatedDate         int64             `json:"createdDate"`
	LastModified        int64             `json:"lastModified"`
	BackgroundImagePath string            `json:"backgroundImagePath,omitempty"`
	BackgroundColor     Color             `json:"backgroundColor"`
	Items               []json.RawMessage `json:"items"`
}

// MarshalPage encodes p and its items as a JSON page record. Timestamps are
// stored as Unix milliseconds.
func MarshalPage(p *Page) ([]byte, error) {
	r := pageRecord{
		ID:                  p.ID,
		Title:               p.Title,
		CreatedDate:         p.Created.UnixMilli(),
		LastModified:        p.Modified.UnixMilli(),
		BackgroundImagePath: p.BackgroundImage,
		BackgroundColor:     p.Background,
		Items:               make([]json.RawMessage, 0, len(p.Items)),
	}
	for _, it := range p.Items {
		data, err := MarshalItem(it)
		if err != nil {
			return nil, err
		}
		r.Items = append(r.Items, data)
	}
	return json.Marshal(r)
}

// UnmarshalPage decodes a JSON page record.
func UnmarshalPage(data []byte) (*Page, error) {
	r := pageRecord{BackgroundColor: DefaultPageBackground}
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("canvas: decode page: %w", err)
	}
	p := &Page{
		ID:              r.ID,
		Title:           r.Title,
		Created:         time.UnixMilli(r.CreatedDate),
		Modified:        time.UnixMilli(r.LastModified),
		Background:      r.BackgroundColor,
		BackgroundImage: r.BackgroundImagePath,
		Items:           make([]*Item, 0, len(r.Items)),
	}
	for i, raw := range r.Items {
		it, err := UnmarshalItem(raw)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		p.Items = append(p.Items, it)
	}
	return p, nil
}
