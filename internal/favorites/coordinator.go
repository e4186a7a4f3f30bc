// Package favorites содержит протокол добавления и удаления избранных докладов
// с подтверждением, а также хранилища избранного
package favorites

import (
	"errors"
	"fmt"
)

// Заголовки и текст диалогов
const (
	TitleAdded          = "Favorite Added"
	TitleAlreadyAdded   = "Favorite already added"
	TitleRemove         = "Remove Favorite"
	RemoveConfirmPrompt = "Would you like to remove this session from your favorites?"
)

var (
	// ErrRequestPending уже есть неразрешенный запрос подтверждения
	ErrRequestPending = errors.New("запрос подтверждения уже открыт")
	// ErrNoPendingRequest нет запроса, который можно разрешить
	ErrNoPendingRequest = errors.New("нет открытого запроса подтверждения")
	// ErrUnknownDecision решение не поддерживается
	ErrUnknownDecision = errors.New("неизвестное решение")
)

// Store внешнее хранилище избранного. С точки зрения координатора
// операции синхронны и всегда успешны
type Store interface {
	HasFavorite(id string) bool
	AddFavorite(id string)
	RemoveFavorite(id string)
}

// Refresher пересчитывает ленту после изменения избранного
type Refresher interface {
	Recompute() error
}

// RequestKind тип запрашиваемого изменения
type RequestKind int

const (
	// KindAdd добавление в избранное
	KindAdd RequestKind = iota
	// KindRemove удаление из избранного
	KindRemove
)

func (k RequestKind) String() string {
	if k == KindAdd {
		return "add"
	}
	return "remove"
}

// ConfirmationRequest ожидающее ответа пользователя изменение избранного
type ConfirmationRequest struct {
	SessionID string
	Kind      RequestKind
	Title     string
	Message   string
}

// Acknowledgement уведомление с единственным действием "закрыть"
type Acknowledgement struct {
	Title string
}

// Outcome результат RequestAdd: либо уведомление о добавлении,
// либо запрос подтверждения удаления
type Outcome struct {
	Ack     *Acknowledgement
	Request *ConfirmationRequest
}

// Decision ответ пользователя на запрос
type Decision int

const (
	// DecisionCancel отказ от изменения
	DecisionCancel Decision = iota
	// DecisionRemove подтверждение удаления
	DecisionRemove
)

// ResultKind итог разрешенного запроса
type ResultKind int

const (
	// ResultCancelled избранное не изменилось
	ResultCancelled ResultKind = iota
	// ResultAdded доклад добавлен
	ResultAdded
	// ResultRemoved доклад удален
	ResultRemoved
)

func (k ResultKind) String() string {
	switch k {
	case ResultAdded:
		return "added"
	case ResultRemoved:
		return "removed"
	default:
		return "cancelled"
	}
}

// Result итог взаимодействия
type Result struct {
	Kind      ResultKind
	SessionID string
	// RefreshErr ошибка пересчета ленты после удаления, если она была
	RefreshErr error
}

// State состояние координатора
type State int

const (
	// StateIdle нет открытого запроса
	StateIdle State = iota
	// StateRequested запрос ждет ответа
	StateRequested
)

// Coordinator реализует протокол Idle -> Requested -> {Removed, Cancelled} -> Idle.
// Изменение хранилища происходит не более одного раза на разрешенный запрос
type Coordinator struct {
	store     Store
	refresher Refresher
	pending   *ConfirmationRequest
}

// NewCoordinator создает координатор. refresher может быть nil
func NewCoordinator(store Store, refresher Refresher) *Coordinator {
	return &Coordinator{
		store:     store,
		refresher: refresher,
	}
}

// State возвращает текущее состояние
func (c *Coordinator) State() State {
	if c.pending != nil {
		return StateRequested
	}
	return StateIdle
}

// Pending возвращает открытый запрос или nil
func (c *Coordinator) Pending() *ConfirmationRequest {
	if c.pending == nil {
		return nil
	}
	req := *c.pending
	return &req
}

// IsFavorite проверяет, находится ли доклад в избранном
func (c *Coordinator) IsFavorite(id string) bool {
	return c.store.HasFavorite(id)
}

// RequestAdd добавляет доклад в избранное. Если доклад уже в избранном,
// повторного добавления нет: открывается подтверждение удаления
func (c *Coordinator) RequestAdd(id string) (Outcome, error) {
	if c.pending != nil {
		return Outcome{}, ErrRequestPending
	}

	if c.store.HasFavorite(id) {
		req, err := c.RequestRemove(id, TitleAlreadyAdded)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Request: req}, nil
	}

	c.store.AddFavorite(id)
	return Outcome{Ack: &Acknowledgement{Title: TitleAdded}}, nil
}

// RequestRemove открывает подтверждение удаления с заданным заголовком
func (c *Coordinator) RequestRemove(id, title string) (*ConfirmationRequest, error) {
	if c.pending != nil {
		return nil, ErrRequestPending
	}
	if title == "" {
		title = TitleRemove
	}

	c.pending = &ConfirmationRequest{
		SessionID: id,
		Kind:      KindRemove,
		Title:     title,
		Message:   RemoveConfirmPrompt,
	}
	return c.Pending(), nil
}

// Resolve применяет ответ пользователя к открытому запросу и закрывает его
func (c *Coordinator) Resolve(decision Decision) (Result, error) {
	if c.pending == nil {
		return Result{}, ErrNoPendingRequest
	}

	req := c.pending
	switch decision {
	case DecisionCancel:
		c.pending = nil
		return Result{Kind: ResultCancelled, SessionID: req.SessionID}, nil

	case DecisionRemove:
		c.pending = nil
		c.store.RemoveFavorite(req.SessionID)
		result := Result{Kind: ResultRemoved, SessionID: req.SessionID}
		if c.refresher != nil {
			if err := c.refresher.Recompute(); err != nil {
				result.RefreshErr = fmt.Errorf("пересчет ленты после удаления: %w", err)
			}
		}
		return result, nil

	default:
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownDecision, decision)
	}
}

// Dismiss закрывает открытый запрос без явного ответа, что равносильно отмене.
// Без открытого запроса ничего не делает
func (c *Coordinator) Dismiss() {
	if c.pending != nil {
		_, _ = c.Resolve(DecisionCancel)
	}
}
