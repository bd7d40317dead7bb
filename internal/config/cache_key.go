package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// OTPChallengeKey returns the cache key for an email's outstanding OTP
// challenge. One challenge per email; a new request overwrites the old key.
func (r *CacheKeyStruct) OTPChallengeKey(email string) string {
	return fmt.Sprintf("otp:%s", email)
}

var CacheKey = NewCacheKeyStruct()
