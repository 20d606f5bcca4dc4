package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"loyalty-hub/internal/database"
	"loyalty-hub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// memDB 模擬 balance+ledger 儲存層：Begin 取得全域鎖並複製狀態，
// 寫入只動複本，Commit 才寫回。注入 failOn 可在交易中途製造儲存失敗，
// 驗證回滾後主狀態毫髮無傷。
type memDB struct {
	mu        sync.Mutex
	users     map[int]*model.User
	rewards   map[int]*model.Reward
	txs       []model.Transaction
	logs      []model.AdminLog
	nextID    int
	failOn    string
	failErr   error // failOn 命中時回傳的錯誤，預設 errInjected
	beginErr  error
	commitErr error
}

func newMemDB() *memDB {
	return &memDB{
		users:   map[int]*model.User{},
		rewards: map[int]*model.Reward{},
		nextID:  1,
	}
}

func (m *memDB) addUser(u model.User) *model.User {
	if u.ID == 0 {
		u.ID = m.nextID
		m.nextID++
	} else if u.ID >= m.nextID {
		m.nextID = u.ID + 1
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	m.users[u.ID] = &u
	return m.users[u.ID]
}

func (m *memDB) addReward(r model.Reward) *model.Reward {
	if r.ID == 0 {
		r.ID = m.nextID
		m.nextID++
	}
	m.rewards[r.ID] = &r
	return m.rewards[r.ID]
}

// txState 為交易內的工作複本
type txState struct {
	db       *memDB
	users    map[int]*model.User
	rewards  map[int]*model.Reward
	txs      []model.Transaction
	logs     []model.AdminLog
	nextID   int
	released bool
}

func (m *memDB) begin(ctx context.Context) (pgx.Tx, error) {
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	m.mu.Lock()
	s := &txState{
		db:      m,
		users:   map[int]*model.User{},
		rewards: map[int]*model.Reward{},
		txs:     append([]model.Transaction(nil), m.txs...),
		logs:    append([]model.AdminLog(nil), m.logs...),
		nextID:  m.nextID,
	}
	for id, u := range m.users {
		cp := *u
		s.users[id] = &cp
	}
	for id, r := range m.rewards {
		cp := *r
		s.rewards[id] = &cp
	}
	return &database.FakeTx{
		QueryRowFn: s.queryRow,
		ExecFn:     s.exec,
		CommitFn:   s.commit,
		RollbackFn: s.rollback,
	}, nil
}

func (s *txState) commit(ctx context.Context) error {
	if s.db.commitErr != nil {
		s.release()
		return s.db.commitErr
	}
	s.db.users = s.users
	s.db.rewards = s.rewards
	s.db.txs = s.txs
	s.db.logs = s.logs
	s.db.nextID = s.nextID
	s.release()
	return nil
}

func (s *txState) rollback(ctx context.Context) error {
	s.release()
	return nil
}

func (s *txState) release() {
	if !s.released {
		s.released = true
		s.db.mu.Unlock()
	}
}

type fakeRow struct{ scan func(dest ...any) error }

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

func errRow(err error) pgx.Row {
	return fakeRow{scan: func(...any) error { return err }}
}

func scanUserInto(u *model.User) pgx.Row {
	return fakeRow{scan: func(dest ...any) error {
		*dest[0].(*int) = u.ID
		*dest[1].(*string) = u.Email
		*dest[2].(*string) = u.PasswordHash
		*dest[3].(*string) = u.FirstName
		*dest[4].(*string) = u.LastName
		*dest[5].(*bool) = u.IsAdmin
		*dest[6].(*bool) = u.IsSuperAdmin
		*dest[7].(*bool) = u.Enabled
		*dest[8].(*int) = u.Points
		*dest[9].(*string) = u.ReferralCode
		*dest[10].(**string) = u.ReferredBy
		*dest[11].(*time.Time) = u.CreatedAt
		return nil
	}}
}

var errInjected = errors.New("storage failure injected")

func (m *memDB) injectedErr() error {
	if m.failErr != nil {
		return m.failErr
	}
	return errInjected
}

func (s *txState) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if s.db.failOn != "" && strings.Contains(sql, s.db.failOn) {
		return errRow(s.db.injectedErr())
	}

	switch {
	case strings.Contains(sql, "FOR UPDATE"):
		u, ok := s.users[args[0].(int)]
		if !ok {
			return errRow(pgx.ErrNoRows)
		}
		return fakeRow{scan: func(dest ...any) error {
			*dest[0].(*int) = u.Points
			return nil
		}}

	case strings.Contains(sql, "INSERT INTO users"):
		u := &model.User{
			ID:           s.nextID,
			Email:        args[0].(string),
			PasswordHash: args[1].(string),
			FirstName:    args[2].(string),
			LastName:     args[3].(string),
			IsAdmin:      args[4].(bool),
			IsSuperAdmin: args[5].(bool),
			Enabled:      args[6].(bool),
			Points:       args[7].(int),
			ReferralCode: args[8].(string),
			CreatedAt:    time.Now(),
		}
		if ref, ok := args[9].(*string); ok {
			u.ReferredBy = ref
		}
		s.nextID++
		s.users[u.ID] = u
		return fakeRow{scan: func(dest ...any) error {
			*dest[0].(*int) = u.ID
			*dest[1].(*time.Time) = u.CreatedAt
			return nil
		}}

	case strings.Contains(sql, "INSERT INTO transactions"):
		t := model.Transaction{
			ID:          s.nextID,
			UserID:      args[0].(int),
			Points:      args[1].(int),
			Type:        args[2].(model.TransactionType),
			Description: args[3].(string),
			CreatedAt:   time.Now(),
		}
		if ref, ok := args[4].(*int); ok {
			t.RewardID = ref
		}
		s.nextID++
		s.txs = append(s.txs, t)
		return fakeRow{scan: func(dest ...any) error {
			*dest[0].(*int) = t.ID
			*dest[1].(*time.Time) = t.CreatedAt
			return nil
		}}

	case strings.Contains(sql, "INSERT INTO admin_logs"):
		l := model.AdminLog{
			ID:        s.nextID,
			AdminID:   args[0].(int),
			Action:    args[2].(model.AdminActionType),
			Details:   args[3].(string),
			CreatedAt: time.Now(),
		}
		if target, ok := args[1].(*int); ok {
			l.TargetUserID = target
		}
		s.nextID++
		s.logs = append(s.logs, l)
		return fakeRow{scan: func(dest ...any) error {
			*dest[0].(*int) = l.ID
			*dest[1].(*time.Time) = l.CreatedAt
			return nil
		}}

	case strings.Contains(sql, "EXISTS (SELECT 1 FROM users WHERE email"):
		exists := false
		for _, u := range s.users {
			if u.Email == args[0].(string) {
				exists = true
			}
		}
		return fakeRow{scan: func(dest ...any) error {
			*dest[0].(*bool) = exists
			return nil
		}}

	case strings.Contains(sql, "EXISTS (SELECT 1 FROM users WHERE referral_code"):
		exists := false
		for _, u := range s.users {
			if u.ReferralCode == args[0].(string) {
				exists = true
			}
		}
		return fakeRow{scan: func(dest ...any) error {
			*dest[0].(*bool) = exists
			return nil
		}}

	case strings.Contains(sql, "WHERE referral_code = $1"):
		for _, u := range s.users {
			if u.ReferralCode == args[0].(string) {
				return scanUserInto(u)
			}
		}
		return errRow(pgx.ErrNoRows)

	case strings.Contains(sql, "FROM rewards WHERE id"):
		r, ok := s.rewards[args[0].(int)]
		if !ok {
			return errRow(pgx.ErrNoRows)
		}
		return fakeRow{scan: func(dest ...any) error {
			*dest[0].(*int) = r.ID
			*dest[1].(*string) = r.Name
			*dest[2].(*string) = r.Description
			*dest[3].(*int) = r.PointsCost
			*dest[4].(*string) = r.ImageURL
			*dest[5].(*bool) = r.Available
			*dest[6].(*time.Time) = r.CreatedAt
			*dest[7].(*time.Time) = r.UpdatedAt
			return nil
		}}

	case strings.Contains(sql, "COALESCE(SUM"):
		sum := 0
		for _, t := range s.txs {
			if t.UserID == args[0].(int) {
				sum += t.Points
			}
		}
		return fakeRow{scan: func(dest ...any) error {
			*dest[0].(*int) = sum
			return nil
		}}

	case strings.Contains(sql, "FROM users WHERE id = $1"):
		u, ok := s.users[args[0].(int)]
		if !ok {
			return errRow(pgx.ErrNoRows)
		}
		return scanUserInto(u)
	}
	panic("memDB: unexpected QueryRow: " + sql)
}

func (s *txState) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if s.db.failOn != "" && strings.Contains(sql, s.db.failOn) {
		return pgconn.CommandTag{}, s.db.injectedErr()
	}
	if strings.Contains(sql, "UPDATE users SET points") {
		u, ok := s.users[args[1].(int)]
		if !ok {
			return pgconn.CommandTag{}, pgx.ErrNoRows
		}
		u.Points = args[0].(int)
		return pgconn.CommandTag{}, nil
	}
	panic("memDB: unexpected Exec: " + sql)
}

// DB 回傳操作主狀態的 FakeDB（交易外讀取走這裡）
func (m *memDB) DB() database.DB {
	return &database.FakeDB{
		BeginFn: m.begin,
		QueryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			m.mu.Lock()
			defer m.mu.Unlock()
			s := &txState{db: m, users: m.users, rewards: m.rewards, txs: m.txs, logs: m.logs, released: true}
			// 直接以主狀態回答，不經複本
			row := s.queryRowNoFail(ctx, sql, args...)
			return row
		},
	}
}

// queryRowNoFail 與 queryRow 相同，但交易外的讀取不受 failOn 影響，
// 方便測試在注入失敗後檢查主狀態。
func (s *txState) queryRowNoFail(ctx context.Context, sql string, args ...any) pgx.Row {
	fail := s.db.failOn
	s.db.failOn = ""
	defer func() { s.db.failOn = fail }()
	return s.queryRow(ctx, sql, args...)
}

func (m *memDB) balance(userID int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[userID].Points
}

func (m *memDB) ledger(userID int) []model.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Transaction
	for _, t := range m.txs {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out
}
