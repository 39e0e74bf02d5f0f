package usecases

import (
	"context"
	"time"
)

// SetNow pins the clock and returns a restore func
func SetNow(t time.Time) func() {
	orig := nowFunc
	nowFunc = func() time.Time { return t }
	return func() { nowFunc = orig }
}

// StubPasswords replaces bcrypt with a reversible scheme so tests stay fast
func StubPasswords() func() {
	origHash, origCheck, origTemp := hashPassword, checkPassword, tempPassword
	hashPassword = func(p string) (string, error) { return "hashed:" + p, nil }
	checkPassword = func(p, h string) bool { return h == "hashed:"+p }
	tempPassword = func(int) (string, error) { return "Tmp12345", nil }
	return func() {
		hashPassword, checkPassword, tempPassword = origHash, origCheck, origTemp
	}
}

// SetHashPassword overrides only the hash step
func SetHashPassword(fn func(string) (string, error)) func() {
	orig := hashPassword
	hashPassword = fn
	return func() { hashPassword = orig }
}

// SetLock replaces the Redis lock primitives
func SetLock(acquire func(context.Context, string, interface{}, time.Duration) (bool, error), release func(context.Context, string) error) func() {
	origAcquire, origRelease := acquireLock, releaseLock
	acquireLock, releaseLock = acquire, release
	return func() { acquireLock, releaseLock = origAcquire, origRelease }
}

var (
	FormatBRL       = formatBRL
	DaysBetween     = daysBetween
	LifecycleState  = lifecycleState
	NormalizeMonths = normalizeMonths
)
