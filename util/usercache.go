package util

import (
	"container/list"
	"os"
	"strconv"
	"sync"

	"gorm.io/gorm"
)

// LRU cache for admin userID -> email, used by the endpoint logger so audit
// rows carry the acting admin's email without a query per request.
type userEntry struct {
	userID uint
	email  string
}

type userLRU struct {
	mu       sync.Mutex
	ll       *list.List
	cache    map[uint]*list.Element
	capacity int
}

var userCache *userLRU

// InitUserEmailCache initializes the LRU cache with given capacity.
// If capacity <= 0, the USER_CACHE_CAPACITY env var or a default of 1000 is used.
func InitUserEmailCache(capacity int) {
	if capacity <= 0 {
		if v, err := strconv.Atoi(os.Getenv("USER_CACHE_CAPACITY")); err == nil && v > 0 {
			capacity = v
		} else {
			capacity = 1000
		}
	}
	userCache = &userLRU{
		ll:       list.New(),
		cache:    make(map[uint]*list.Element),
		capacity: capacity,
	}
}

// UserEmailCacheGet returns email and true if present in cache.
func UserEmailCacheGet(userID uint) (string, bool) {
	if userCache == nil {
		return "", false
	}
	userCache.mu.Lock()
	defer userCache.mu.Unlock()
	if ele, ok := userCache.cache[userID]; ok {
		userCache.ll.MoveToFront(ele)
		if e, ok := ele.Value.(userEntry); ok {
			return e.email, true
		}
	}
	return "", false
}

// UserEmailCacheSet sets the email for a userID in the cache.
func UserEmailCacheSet(userID uint, email string) {
	if userCache == nil {
		return
	}
	userCache.mu.Lock()
	defer userCache.mu.Unlock()
	if ele, ok := userCache.cache[userID]; ok {
		userCache.ll.MoveToFront(ele)
		ele.Value = userEntry{userID: userID, email: email}
		return
	}
	ele := userCache.ll.PushFront(userEntry{userID: userID, email: email})
	userCache.cache[userID] = ele
	if userCache.ll.Len() > userCache.capacity {
		tail := userCache.ll.Back()
		if tail != nil {
			if e, ok := tail.Value.(userEntry); ok {
				delete(userCache.cache, e.userID)
			}
			userCache.ll.Remove(tail)
		}
	}
}

// LookupUserEmail resolves an admin email through the cache, falling back to
// the users table and caching the result.
func LookupUserEmail(db *gorm.DB, userID uint) string {
	if userID == 0 {
		return ""
	}
	if email, ok := UserEmailCacheGet(userID); ok {
		return email
	}
	if db == nil {
		return ""
	}
	var email string
	if err := db.Table("users").Select("email").Where("id = ?", userID).Scan(&email).Error; err != nil {
		return ""
	}
	if email != "" {
		UserEmailCacheSet(userID, email)
	}
	return email
}
