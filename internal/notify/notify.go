package notify

import (
	"context"

	"github.com/labstack/gommon/log"
)

// Notifier 為外部通知管道的合約。通知一律在帳本交易 commit 之後送出，
// 失敗只記 log，不得影響已提交的點數異動。
type Notifier interface {
	Email(ctx context.Context, to, subject, body string) error
	SMS(ctx context.Context, to, message string) error
}

// LogNotifier 將通知寫進 log，作為尚未接上郵件/簡訊供應商時的預設實作。
type LogNotifier struct{}

func (LogNotifier) Email(ctx context.Context, to, subject, body string) error {
	log.Infof("email to %s: %s", to, subject)
	return nil
}

func (LogNotifier) SMS(ctx context.Context, to, message string) error {
	log.Infof("sms to %s: %s", to, message)
	return nil
}

// FakeNotifier 供測試驗證通知派送
type FakeNotifier struct {
	EmailFn func(ctx context.Context, to, subject, body string) error
	SMSFn   func(ctx context.Context, to, message string) error
}

func (f *FakeNotifier) Email(ctx context.Context, to, subject, body string) error {
	if f.EmailFn != nil {
		return f.EmailFn(ctx, to, subject, body)
	}
	panic("unexpected Email")
}

func (f *FakeNotifier) SMS(ctx context.Context, to, message string) error {
	if f.SMSFn != nil {
		return f.SMSFn(ctx, to, message)
	}
	panic("unexpected SMS")
}
