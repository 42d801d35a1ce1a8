package authz

import (
	"context"
	"sync"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"
	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
)

// modelText is the RBAC model matching the imported permission matrix: roles
// hold per-page view/edit grants, users group into roles.
const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Service provides helpers for enforcing authorization decisions.
type Service struct {
	cfg      Config
	adapter  persist.Adapter
	logger   *logrus.Entry
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
}

// NewService constructs a Service over the given policy source. The enforcer
// initializes lazily so construction never touches the database; migrations
// may not have run yet when modules register.
func NewService(cfg Config, adapter persist.Adapter) *Service {
	cfg = cfg.normalized()

	var logger *logrus.Entry
	if cfg.Logger != nil {
		logger = cfg.Logger.WithField("component", "authz")
	} else {
		logger = logrus.WithField("component", "authz")
	}

	return &Service{
		cfg:     cfg,
		adapter: adapter,
		logger:  logger,
	}
}

// Mode reports the configured enforcement mode.
func (s *Service) Mode() Mode {
	return s.cfg.Mode
}

// Authorize returns an error if the request is denied.
func (s *Service) Authorize(ctx context.Context, req Request) error {
	mode := s.cfg.Mode
	if mode == ModeDisabled {
		return nil
	}

	start := time.Now()
	allowed, err := s.Check(ctx, req)
	if err != nil {
		return err
	}
	recordDecision(mode, allowed, time.Since(start))

	if !allowed {
		s.logger.WithContext(ctx).WithFields(logrus.Fields{
			"subject": req.Subject,
			"page":    req.Page,
			"action":  req.Action,
			"mode":    mode,
		}).Warn("authz denied request")
		if mode == ModeEnforce {
			return forbiddenError(req)
		}
	}
	return nil
}

// Check evaluates a request without returning an authorization error.
func (s *Service) Check(ctx context.Context, req Request) (bool, error) {
	enf, err := s.ensure()
	if err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	res, err := enf.Enforce(req.Subject, req.Page, req.Action)
	if err != nil {
		return false, errors.Wrap(err, "authz: enforce failed")
	}
	return res, nil
}

// Reload re-reads the policy tables. Wired to the import lifecycle so a
// permission import takes effect without a restart.
func (s *Service) Reload(ctx context.Context) error {
	enf, err := s.ensure()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := enf.LoadPolicy(); err != nil {
		return errors.Wrap(err, "authz: reload policy failed")
	}
	s.logger.WithContext(ctx).Info("authz policy reloaded")
	return nil
}

func (s *Service) ensure() (*casbin.Enforcer, error) {
	s.mu.RLock()
	enf := s.enforcer
	s.mu.RUnlock()
	if enf != nil {
		return enf, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enforcer == nil {
		m, err := model.NewModelFromString(modelText)
		if err != nil {
			return nil, errors.Wrap(err, "authz: parse model")
		}
		enf, err := casbin.NewEnforcer(m, s.adapter)
		if err != nil {
			return nil, errors.Wrap(err, "authz: initialize enforcer")
		}
		s.enforcer = enf
	}
	return s.enforcer, nil
}
