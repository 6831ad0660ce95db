package in

import (
	"context"

	sessiondto "readrise/internal/modules/session/dto"
	sessionin "readrise/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, userID, entryID string, startPage *int) (sessiondto.StartOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{UserID: userID, EntryID: entryID, StartPage: startPage})
}

func (h CLIHandler) End(ctx context.Context, userID, sessionID string, endPage *int, note *string) (sessiondto.SessionOutput, error) {
	return h.usecase.End(ctx, sessiondto.EndInput{UserID: userID, SessionID: sessionID, EndPage: endPage, Note: note})
}

func (h CLIHandler) List(ctx context.Context, userID, entryID string, limit int) ([]sessiondto.SessionOutput, error) {
	return h.usecase.List(ctx, sessiondto.ListInput{UserID: userID, EntryID: entryID, Limit: limit})
}

func (h CLIHandler) GetActive(ctx context.Context, userID, entryID string) (sessiondto.SessionOutput, error) {
	return h.usecase.GetActive(ctx, sessiondto.GetActiveInput{UserID: userID, EntryID: entryID})
}
