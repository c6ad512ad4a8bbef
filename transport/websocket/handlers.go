package websocket

import (
	"context"
	"errors"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	actionRoundNew   = "round:new"
	actionRoundGet   = "round:get"
	actionRoundTurn  = "round:turn"
	actionRoundReset = "round:reset"
	actionError      = "error"
)

func (that *Server) handleNewRound(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	round, err := that.rounds.NewRound(ctx)
	if err != nil {
		return that.replyError(conn, msg.Action, nil, err)
	}

	return that.sendMessage(conn, msg.Action, Payload{RoundID: round.ID, Round: round})
}

func (that *Server) handleGetRound(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payloadReq, err := decodePayload(msg)
	if err != nil || payloadReq.RoundID == "" {
		return that.sendErrorResponse(conn, msg.Action, "round_id is required")
	}

	round, err := that.rounds.GetRound(ctx, payloadReq.RoundID)
	if err != nil {
		return that.replyError(conn, msg.Action, nil, err)
	}

	return that.sendMessage(conn, msg.Action, Payload{RoundID: round.ID, Round: round})
}

func (that *Server) handleRoundTurn(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payloadReq, err := decodePayload(msg)
	if err != nil || payloadReq.RoundID == "" || payloadReq.Row == nil || payloadReq.Col == nil {
		return that.sendErrorResponse(conn, msg.Action, "round_id, row and col are required")
	}

	round, err := that.rounds.MakeTurn(ctx, payloadReq.RoundID, *payloadReq.Row, *payloadReq.Col)
	if err != nil {
		return that.replyError(conn, msg.Action, round, err)
	}

	return that.sendMessage(conn, msg.Action, Payload{RoundID: round.ID, Round: round})
}

func (that *Server) handleResetRound(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payloadReq, err := decodePayload(msg)
	if err != nil || payloadReq.RoundID == "" {
		return that.sendErrorResponse(conn, msg.Action, "round_id is required")
	}

	round, err := that.rounds.ResetRound(ctx, payloadReq.RoundID)
	if err != nil {
		return that.replyError(conn, msg.Action, nil, err)
	}

	return that.sendMessage(conn, msg.Action, Payload{RoundID: round.ID, Round: round})
}

// replyError reports a failed action to the client; rejected moves still carry the round.
func (that *Server) replyError(conn *websocket.Conn, action string, round *entity.Round, err error) error {
	payload := Payload{Round: round, Error: err.Error()}

	switch {
	case errors.Is(err, apperror.ErrRejected):
	case errors.Is(err, apperror.ErrRoundNotFound):
		payload.Error = apperror.ErrRoundNotFound.Error()
	default:
		that.logger.Error("action failed", "action", action, "error", err)
		payload.Error = "internal error"
	}

	if round != nil {
		payload.RoundID = round.ID
	}

	return that.sendMessage(conn, action, payload)
}
