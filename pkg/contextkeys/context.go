package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// DBContextKey - ключ, по которому хранится *gorm.DB в context
const DBContextKey = contextKey("db")

// IdempotencyKey - ключ заголовка Idempotency-Key в context
const IdempotencyKey = contextKey("idempotency_key")
