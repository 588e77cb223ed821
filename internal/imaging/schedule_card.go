package imaging

import (
	"bytes"
	"image/color"
	"sort"
	"time"

	"github.com/Freeeeeet/psychologist_bot/internal/model"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	cardWidth        = 900
	headerHeight     = 70
	dayHeaderHeight  = 36
	chipHeight       = 34.0
	chipPaddingX     = 24.0
	chipGap          = 10.0
	chipBorderRadius = 6.0
	shadowOffset     = 3.0
	footerHeight     = 60
	minCardHeight    = 300
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	titleColor     = color.RGBA{80, 85, 90, 220}
	dayHeaderColor = color.RGBA{110, 115, 120, 220}

	chipFreeColor       = color.RGBA{133, 193, 85, 220}
	chipBookedColor     = color.RGBA{255, 182, 193, 255}
	chipTextColor       = color.RGBA{20, 24, 28, 230}
	chipBookedTextColor = color.RGBA{120, 40, 50, 255}
	chipShadowColor     = color.RGBA{0, 0, 0, 20}

	legendTextColor = color.RGBA{70, 74, 78, 220}
)

// RenderScheduleCard рисует карточку расписания: слоты сгруппированы по
// дням, свободные зелёные, занятые розовые.
// Подписи на карточке цифровые и латинские, потому что basicfont
// покрывает только ASCII. Русский текст идёт в caption сообщения.
func RenderScheduleCard(slots []*model.Slot) ([]byte, error) {
	days := groupByDay(slots)

	height := cardHeight(days)
	dc := gg.NewContext(cardWidth, height)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(bgColor)
	dc.Clear()

	drawTitle(dc, slots)

	y := float64(headerHeight)
	for _, day := range days {
		y = drawDay(dc, day, y)
	}

	drawLegend(dc, float64(height))

	return encodePNG(dc)
}

// daySlots слоты одного календарного дня
type daySlots struct {
	date  time.Time
	slots []*model.Slot
}

// groupByDay группирует слоты по дням в хронологическом порядке
func groupByDay(slots []*model.Slot) []daySlots {
	byDay := make(map[string][]*model.Slot)
	for _, slot := range slots {
		key := slot.StartTime.Format("2006-01-02")
		byDay[key] = append(byDay[key], slot)
	}

	keys := make([]string, 0, len(byDay))
	for key := range byDay {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	days := make([]daySlots, 0, len(keys))
	for _, key := range keys {
		group := byDay[key]
		sort.Slice(group, func(i, j int) bool {
			return group[i].StartTime.Before(group[j].StartTime)
		})
		days = append(days, daySlots{date: group[0].StartTime, slots: group})
	}
	return days
}

// cardHeight высота холста под все дни и легенду
func cardHeight(days []daySlots) int {
	height := headerHeight + footerHeight
	for _, day := range days {
		height += dayHeaderHeight + len(day.slots)*int(chipHeight+chipGap)
	}
	if height < minCardHeight {
		height = minCardHeight
	}
	return height
}

// drawTitle заголовок с диапазоном дат
func drawTitle(dc *gg.Context, slots []*model.Slot) {
	title := "Schedule"
	if len(slots) > 0 {
		first := slots[0].StartTime
		last := slots[len(slots)-1].StartTime
		title = first.Format("02.01.2006") + " - " + last.Format("02.01.2006")
	}

	dc.SetColor(titleColor)
	dc.DrawStringAnchored(title, cardWidth/2, float64(headerHeight)/2, 0.5, 0.5)
}

// drawDay рисует заголовок дня и его слоты, возвращает новый y
func drawDay(dc *gg.Context, day daySlots, y float64) float64 {
	dc.SetColor(dayHeaderColor)
	dc.DrawStringAnchored(day.date.Format("02.01 Mon"), chipPaddingX, y+dayHeaderHeight/2, 0, 0.5)
	y += dayHeaderHeight

	for _, slot := range day.slots {
		drawChip(dc, slot, y)
		y += chipHeight + chipGap
	}
	return y
}

// drawChip один слот: цветная плашка со временем
func drawChip(dc *gg.Context, slot *model.Slot, y float64) {
	chipWidth := float64(cardWidth) - chipPaddingX*2

	fillColor := chipFreeColor
	textColor := chipTextColor
	label := slot.StartTime.Format("15:04") + "  free"
	if slot.IsBooked {
		fillColor = chipBookedColor
		textColor = chipBookedTextColor
		label = slot.StartTime.Format("15:04") + "  booked"
	}

	// Тень
	dc.SetColor(chipShadowColor)
	dc.DrawRoundedRectangle(chipPaddingX+shadowOffset, y+shadowOffset, chipWidth, chipHeight, chipBorderRadius)
	dc.Fill()

	// Плашка
	dc.SetColor(fillColor)
	dc.DrawRoundedRectangle(chipPaddingX, y, chipWidth, chipHeight, chipBorderRadius)
	dc.Fill()

	// Рамка
	dc.SetColor(darkenColor(fillColor, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(chipPaddingX, y, chipWidth, chipHeight, chipBorderRadius)
	dc.Stroke()

	dc.SetColor(textColor)
	dc.DrawStringAnchored(label, chipPaddingX+14, y+chipHeight/2, 0, 0.35)
}

// drawLegend легенда внизу карточки
func drawLegend(dc *gg.Context, height float64) {
	boxW := 20.0
	boxH := 14.0
	y := height - footerHeight/2 - boxH/2
	x := chipPaddingX

	items := []struct {
		label string
		clr   color.Color
	}{
		{"free", chipFreeColor},
		{"booked", chipBookedColor},
	}

	for _, item := range items {
		dc.SetColor(item.clr)
		dc.DrawRoundedRectangle(x, y, boxW, boxH, 3)
		dc.Fill()

		dc.SetColor(legendTextColor)
		dc.DrawStringAnchored(item.label, x+boxW+8, y+boxH/2, 0, 0.35)
		x += boxW + 8 + float64(len(item.label))*7 + 24
	}
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// encodePNG кодирует холст в PNG
func encodePNG(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
