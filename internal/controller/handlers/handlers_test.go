package handlers

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/psychologist_bot/internal/config"
	"github.com/Freeeeeet/psychologist_bot/internal/controller/state"
	"github.com/Freeeeeet/psychologist_bot/internal/model"
	"github.com/Freeeeeet/psychologist_bot/internal/service"
)

const (
	adminID  int64 = 100
	clientID int64 = 42
)

type fakeClient struct {
	messages []*bot.SendMessageParams
	photos   []*bot.SendPhotoParams
	edits    []*bot.EditMessageTextParams
}

func (f *fakeClient) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*tgmodels.Message, error) {
	f.messages = append(f.messages, params)
	return &tgmodels.Message{}, nil
}

func (f *fakeClient) SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*tgmodels.Message, error) {
	f.photos = append(f.photos, params)
	return &tgmodels.Message{}, nil
}

func (f *fakeClient) EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*tgmodels.Message, error) {
	f.edits = append(f.edits, params)
	return &tgmodels.Message{}, nil
}

func (f *fakeClient) AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error) {
	return true, nil
}

func (f *fakeClient) lastMessage() *bot.SendMessageParams {
	if len(f.messages) == 0 {
		return nil
	}
	return f.messages[len(f.messages)-1]
}

type fakeScheduleService struct {
	slots     map[int64]*model.Slot
	nextID    int64
	addErr    error
	deleteErr error
	deleted   []int64
}

func newFakeScheduleService() *fakeScheduleService {
	return &fakeScheduleService{slots: make(map[int64]*model.Slot)}
}

func (f *fakeScheduleService) addSlot(id int64, startTime time.Time, booked bool) *model.Slot {
	slot := &model.Slot{ID: id, StartTime: startTime, IsBooked: booked}
	f.slots[id] = slot
	return slot
}

func (f *fakeScheduleService) AddSlot(ctx context.Context, startTime time.Time) (*model.Slot, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	for _, s := range f.slots {
		if s.StartTime.Equal(startTime) {
			return nil, model.ErrSlotExists
		}
	}
	f.nextID++
	return f.addSlot(f.nextID, startTime, false), nil
}

func (f *fakeScheduleService) DeleteSlot(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	delete(f.slots, id)
	return nil
}

func (f *fakeScheduleService) FreeFutureSlots(ctx context.Context) ([]*model.Slot, error) {
	var out []*model.Slot
	for _, s := range f.slots {
		if !s.IsBooked && s.StartTime.After(time.Now()) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScheduleService) FutureSlots(ctx context.Context) ([]*model.Slot, error) {
	var out []*model.Slot
	for _, s := range f.slots {
		if s.StartTime.After(time.Now()) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScheduleService) AllSlots(ctx context.Context) ([]*model.Slot, error) {
	var out []*model.Slot
	for _, s := range f.slots {
		out = append(out, s)
	}
	return out, nil
}

type fakeBookingService struct {
	booked   []service.BookingRequest
	bookErr  error
	upcoming []*model.Appointment
	past     []*model.Appointment
}

func (f *fakeBookingService) Book(ctx context.Context, req service.BookingRequest) (*model.Appointment, error) {
	if f.bookErr != nil {
		return nil, f.bookErr
	}
	f.booked = append(f.booked, req)
	return &model.Appointment{
		ID:               int64(len(f.booked)),
		ClientName:       req.ClientName,
		ClientContact:    req.ClientContact,
		ClientRequest:    req.ClientRequest,
		ConsultationType: req.ConsultationType,
		SlotID:           req.SlotID,
		Slot:             &model.Slot{ID: req.SlotID, StartTime: time.Date(2025, 11, 25, 14, 0, 0, 0, time.UTC), IsBooked: true},
	}, nil
}

func (f *fakeBookingService) Upcoming(ctx context.Context) ([]*model.Appointment, error) {
	return f.upcoming, nil
}

func (f *fakeBookingService) Past(ctx context.Context) ([]*model.Appointment, error) {
	return f.past, nil
}

type harness struct {
	handlers *Handlers
	client   *fakeClient
	schedule *fakeScheduleService
	booking  *fakeBookingService
	states   *state.Manager
}

func newHarness() *harness {
	client := &fakeClient{}
	schedule := newFakeScheduleService()
	booking := &fakeBookingService{}
	states := state.NewManager()

	cfg := &config.Config{
		AdminIDs:      []int64{adminID},
		GreetingPhoto: "testdata/missing.jpg",
	}

	return &harness{
		handlers: New(cfg, client, schedule, booking, states, zap.NewNop()),
		client:   client,
		schedule: schedule,
		booking:  booking,
		states:   states,
	}
}

func textUpdate(userID int64, text string) *tgmodels.Update {
	return &tgmodels.Update{
		Message: &tgmodels.Message{
			Text: text,
			From: &tgmodels.User{ID: userID},
			Chat: tgmodels.Chat{ID: userID},
		},
	}
}
