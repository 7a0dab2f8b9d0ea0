package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/skrapbuk/skrapbuk/internal/repository"
	"github.com/skrapbuk/skrapbuk/internal/service"
	"github.com/skrapbuk/skrapbuk/pkg/logging"
)

// Denial is a terminal gate failure.
type Denial struct {
	Status  int
	Code    string
	Message string
}

// Predicate is one authorization check. Predicates are pure reads: they
// never mutate state, and return a Denial (or an internal error) without
// touching the response themselves.
type Predicate struct {
	Name  string
	Check func(ctx context.Context, p *Principal) (*Denial, error)
}

// Gate composes authentication and an ordered predicate chain around a
// protected handler. The first failing predicate short-circuits the chain;
// every failure is logged with the identity, target operation and reason
// before the response is written.
type Gate struct {
	jwtSecret    []byte
	participants repository.ParticipantRepository
	answers      repository.AnswersRepository
	bans         repository.BanRepository
	event        service.EventConfig
	log          *logging.Logger
}

func NewGate(
	jwtSecret string,
	participants repository.ParticipantRepository,
	answers repository.AnswersRepository,
	bans repository.BanRepository,
	event service.EventConfig,
	log *logging.Logger,
) *Gate {
	return &Gate{
		jwtSecret:    []byte(jwtSecret),
		participants: participants,
		answers:      answers,
		bans:         bans,
		event:        event,
		log:          log,
	}
}

// Protect wraps next with authentication followed by the given predicates,
// evaluated left to right.
func (g *Gate) Protect(operation string, next http.Handler, preds ...Predicate) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, ok := BearerToken(r)
		if !ok {
			g.deny(w, r, operation, "", "missing bearer token", &Denial{
				Status: http.StatusUnauthorized, Code: "UNAUTHORIZED", Message: "Missing or invalid token",
			})
			return
		}

		principal, err := ParsePrincipal(tokenStr, g.jwtSecret)
		if err != nil {
			g.deny(w, r, operation, "", "invalid session token", &Denial{
				Status: http.StatusUnauthorized, Code: "UNAUTHORIZED", Message: "Invalid or expired token",
			})
			return
		}

		for _, pred := range preds {
			denial, err := pred.Check(r.Context(), principal)
			if err != nil {
				g.log.Error("gate check failed", logrus.Fields{
					"operation": operation,
					"predicate": pred.Name,
					"snowflake": principal.Snowflake,
					"error":     err.Error(),
				})
				writeDenial(w, &Denial{
					Status: http.StatusInternalServerError, Code: "INTERNAL", Message: "Something went wrong",
				})
				return
			}
			if denial != nil {
				g.deny(w, r, operation, principal.Snowflake, pred.Name, denial)
				return
			}
		}

		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), principal)))
	})
}

func (g *Gate) deny(w http.ResponseWriter, r *http.Request, operation, snowflake, reason string, d *Denial) {
	g.log.Warn("request denied", logrus.Fields{
		"operation": operation,
		"remote":    r.RemoteAddr,
		"snowflake": snowflake,
		"reason":    reason,
	})
	writeDenial(w, d)
}

func writeDenial(w http.ResponseWriter, d *Denial) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(d.Status)
	fmt.Fprintf(w, `{"error":{"code":%q,"message":%q}}`, d.Code, d.Message)
}

// NotBanned fails with Forbidden if a ban record exists for the caller.
func (g *Gate) NotBanned() Predicate {
	return Predicate{
		Name: "not_banned",
		Check: func(ctx context.Context, p *Principal) (*Denial, error) {
			ban, err := g.bans.GetBySnowflake(ctx, p.Snowflake)
			if err != nil {
				return nil, err
			}
			if ban != nil {
				return &Denial{
					Status:  http.StatusForbidden,
					Code:    "FORBIDDEN",
					Message: "You are banned and cannot participate in the event",
				}, nil
			}
			return nil, nil
		},
	}
}

// Admin fails with Forbidden unless the caller is on the admin allow-list.
func (g *Gate) Admin() Predicate {
	return Predicate{
		Name: "admin",
		Check: func(_ context.Context, p *Principal) (*Denial, error) {
			if !g.event.IsAdmin(p.Snowflake) {
				return &Denial{
					Status:  http.StatusForbidden,
					Code:    "FORBIDDEN",
					Message: "Only admins can access this function",
				}, nil
			}
			return nil, nil
		},
	}
}

// PartnerAssigned fails with Forbidden until the pairing engine has given
// the caller a partner.
func (g *Gate) PartnerAssigned() Predicate {
	return Predicate{
		Name: "partner_assigned",
		Check: func(ctx context.Context, p *Principal) (*Denial, error) {
			row, err := g.participants.GetBySnowflake(ctx, p.Snowflake)
			if err != nil {
				return nil, err
			}
			if row == nil || row.Partner == nil {
				return &Denial{
					Status:  http.StatusForbidden,
					Code:    "FORBIDDEN",
					Message: "You have not been assigned a partner yet",
				}, nil
			}
			return nil, nil
		},
	}
}

// AnswersSubmitted fails with Forbidden until the caller has submitted the
// questionnaire.
func (g *Gate) AnswersSubmitted() Predicate {
	return Predicate{
		Name: "answers_submitted",
		Check: func(ctx context.Context, p *Principal) (*Denial, error) {
			answers, err := g.answers.GetBySnowflake(ctx, p.Snowflake)
			if err != nil {
				return nil, err
			}
			if answers == nil {
				return &Denial{
					Status:  http.StatusForbidden,
					Code:    "FORBIDDEN",
					Message: "You must submit your answers before joining",
				}, nil
			}
			return nil, nil
		},
	}
}
