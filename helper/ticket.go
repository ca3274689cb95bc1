package helper

import (
	"errors"
	"strings"
	"time"

	"event_manager/database"
	"event_manager/logger"
	"event_manager/model"
	"event_manager/utils"

	"gorm.io/gorm"
)

// ErrNotOrphan rejects orphan-only admin operations on healthy tickets.
var ErrNotOrphan = errors.New("ticket: both references resolve, not an orphan")

const orphanCondition = "event_id IS NULL OR user_id IS NULL"

// expireGrace is how long after the event date a booked ticket stays usable
// before the sweep marks it expired.
const expireGrace = 30 * time.Minute

// CheckInTicket drives booked -> used at the door. Any other starting status
// is rejected; a ticket is only scanned in once.
func CheckInTicket(code string) (*model.Ticket, error) {
	db := database.DB

	var ticket model.Ticket
	if err := db.Where("ticket_code = ?", code).First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}

	if ticket.Status != model.TicketBooked {
		return nil, ErrTicketNotUsable
	}

	now := time.Now()
	ticket.Status = model.TicketUsed
	ticket.UsedAt = &now
	if err := db.Save(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// CancelTicket drives booked -> cancelled for an ordinary admin or user
// cancellation. Terminal tickets are left alone.
func CancelTicket(ticketID uint) (*model.Ticket, error) {
	db := database.DB

	var ticket model.Ticket
	if err := db.First(&ticket, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}

	if ticket.Status != model.TicketBooked {
		return nil, ErrTicketNotUsable
	}

	now := time.Now()
	ticket.Status = model.TicketCancelled
	ticket.CancelledAt = &now
	if err := db.Save(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ExpireTickets marks booked tickets of past events as expired. Time-based,
// never user-triggered; runs from the scheduler.
func ExpireTickets() int64 {
	db := database.DB
	cutoff := time.Now().Add(-expireGrace)

	var expired []model.Ticket
	err := db.
		Joins("JOIN events ON events.id = tickets.event_id").
		Where("tickets.status = ? AND events.date < ?", model.TicketBooked, cutoff).
		Find(&expired).Error
	if err != nil {
		logger.Errorf("expiry sweep query failed: %v", err)
		return 0
	}

	if len(expired) == 0 {
		return 0
	}

	now := time.Now()
	var count int64
	for _, ticket := range expired {
		ticket.Status = model.TicketExpired
		ticket.ExpiredAt = &now
		if err := db.Save(&ticket).Error; err != nil {
			logger.Errorf("expiry update failed for %s: %v", ticket.TicketCode, err)
			continue
		}
		count++
	}

	logger.Infof("expired %d tickets past their event date", count)
	return count
}

// AssignOrphanTicket resolves an orphan's event axis by pointing it at an
// existing event. The target must resolve; a dangling choice is rejected
// before anything is written.
func AssignOrphanTicket(ticketID, eventID uint) (*model.Ticket, error) {
	db := database.DB

	var ticket model.Ticket
	if err := db.First(&ticket, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}

	if !ticket.IsOrphan() {
		return nil, ErrNotOrphan
	}

	var count int64
	if err := db.Model(&model.Event{}).Where("id = ?", eventID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrAssignmentTargetMissing
	}

	ticket.EventID = utils.Ptr(eventID)
	if err := db.Save(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// CancelOrphanTicket cancels an orphan from the reconciliation screen.
// Idempotent: cancelling an already-cancelled ticket is a no-op success.
func CancelOrphanTicket(ticketID uint) (*model.Ticket, error) {
	db := database.DB

	var ticket model.Ticket
	if err := db.First(&ticket, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}

	if ticket.Status == model.TicketCancelled {
		return &ticket, nil
	}
	if !ticket.IsOrphan() {
		return nil, ErrNotOrphan
	}

	now := time.Now()
	ticket.Status = model.TicketCancelled
	ticket.CancelledAt = &now
	if err := db.Save(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// GetTicketStatistics aggregates the dashboard counters. Orphans are counted
// by the reference predicate, independent of status.
func GetTicketStatistics() (*model.TicketStatistics, error) {
	db := database.DB

	stats := &model.TicketStatistics{
		StatusCounts: map[string]int64{},
	}

	type statusRow struct {
		Status string
		Count  int64
	}
	var rows []statusRow
	if err := db.Model(&model.Ticket{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.StatusCounts[strings.ToLower(row.Status)] = row.Count
		stats.Total += row.Count
	}

	if err := db.Model(&model.Ticket{}).
		Where(orphanCondition).
		Count(&stats.OrphanCount).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// ListTickets returns a filtered, paginated admin listing. The orphan filter
// applies the reference predicate regardless of status, so an orphan that is
// still booked shows up under it.
func ListTickets(filter model.FilterTicketInput) ([]model.Ticket, int64, error) {
	db := database.DB

	query := db.Model(&model.Ticket{})

	switch strings.ToLower(filter.Status) {
	case "", "all":
		// no status constraint
	case "orphan":
		query = query.Where(orphanCondition)
	default:
		query = query.Where("status = ?", strings.ToUpper(filter.Status))
	}

	if filter.EventID > 0 {
		query = query.Where("event_id = ?", filter.EventID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tickets []model.Ticket
	query = utils.ApplyPagination(query, filter.Limit, filter.Page)
	if err := query.Order("id DESC").Find(&tickets).Error; err != nil {
		return nil, 0, err
	}

	return tickets, total, nil
}
