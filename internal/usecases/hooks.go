package usecases

import (
	"time"

	"maisquecardapio.backend/pkg/crypto"
	"maisquecardapio.backend/pkg/redis"
)

// Package level seams replaced in tests
var (
	nowFunc       = time.Now
	hashPassword  = crypto.HashPassword
	checkPassword = crypto.CheckPassword
	tempPassword  = crypto.GenerateTemporaryPassword
	acquireLock   = redis.SetNX
	releaseLock   = redis.Del
)
