package helper

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SeatHolder places and releases tentative, time-bounded seat holds while a
// booking session is in flight. Holds are advisory: the authoritative gate
// against overselling is the conditional seat decrement at confirmation.
type SeatHolder interface {
	HoldSeat(ctx context.Context, eventID uint, seatNumber, sessionID string) error
	ReleaseSeat(ctx context.Context, eventID uint, seatNumber string) error
	MarkSeatSold(ctx context.Context, eventID uint, seatNumber, sessionID string) error
	SeatStatus(ctx context.Context, eventID uint, seatNumber string) (string, error)
}

const (
	SeatHeld = "held"
	SeatSold = "sold"
)

// RedisSeatHolder keeps one hash per seat with a TTL, so abandoned sessions
// release their seats by expiry even if the cancel call never arrives.
type RedisSeatHolder struct {
	Redis   *redis.Client
	HoldTTL time.Duration
}

func NewRedisSeatHolder(client *redis.Client, holdTTL time.Duration) *RedisSeatHolder {
	return &RedisSeatHolder{Redis: client, HoldTTL: holdTTL}
}

func seatKey(eventID uint, seatNumber string) string {
	return fmt.Sprintf("seat:%d:%s", eventID, seatNumber)
}

// HoldSeat claims the seat with a single HSETNX on the status field, so two
// concurrent initiates can never both take the same label. A seat already
// held or sold leaves the field set and the claim fails.
func (s *RedisSeatHolder) HoldSeat(ctx context.Context, eventID uint, seatNumber, sessionID string) error {
	key := seatKey(eventID, seatNumber)

	claimed, err := s.Redis.HSetNX(ctx, key, "status", SeatHeld).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return ErrSeatUnavailable
	}

	s.Redis.HSet(ctx, key, map[string]any{
		"held_by": sessionID,
		"held_at": time.Now().Unix(),
	})
	s.Redis.Expire(ctx, key, s.HoldTTL)

	return nil
}

func (s *RedisSeatHolder) ReleaseSeat(ctx context.Context, eventID uint, seatNumber string) error {
	key := seatKey(eventID, seatNumber)

	status, _ := s.Redis.HGet(ctx, key, "status").Result()
	if status == SeatSold {
		return fmt.Errorf("seat hold: cannot release a sold seat")
	}

	s.Redis.Del(ctx, key)
	return nil
}

func (s *RedisSeatHolder) MarkSeatSold(ctx context.Context, eventID uint, seatNumber, sessionID string) error {
	key := seatKey(eventID, seatNumber)

	s.Redis.HSet(ctx, key, map[string]any{
		"status":  SeatSold,
		"sold_to": sessionID,
		"sold_at": time.Now().Unix(),
	})
	s.Redis.Persist(ctx, key)

	return nil
}

func (s *RedisSeatHolder) SeatStatus(ctx context.Context, eventID uint, seatNumber string) (string, error) {
	status, err := s.Redis.HGet(ctx, seatKey(eventID, seatNumber), "status").Result()
	if err == redis.Nil {
		return "available", nil
	}
	if err != nil {
		return "", err
	}
	return status, nil
}
