package ws

import (
	"sync"

	"collabhub_backend/internal/logger"
	"collabhub_backend/internal/metrics"
)

// Event - конверт realtime-события, который получает клиент
type Event struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// Manager держит активные websocket-соединения и реализует
// services.Publisher: сервисы публикуют события, не зная о транспорте.
type Manager struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	mu         sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event),
	}
}

func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			if m.clients[client.UserID] == nil {
				m.clients[client.UserID] = make(map[*Client]struct{})
			}
			m.clients[client.UserID][client] = struct{}{}
			m.mu.Unlock()
			metrics.Registry(metrics.DefaultNamespace).WSConnections.Inc()
			logger.Info("ws client registered", "user_id", client.UserID, "total", m.GetClientCount())

		case client := <-m.unregister:
			m.mu.Lock()
			if conns, ok := m.clients[client.UserID]; ok {
				if _, ok := conns[client]; ok {
					close(client.Send)
					delete(conns, client)
					if len(conns) == 0 {
						delete(m.clients, client.UserID)
					}
					metrics.Registry(metrics.DefaultNamespace).WSConnections.Dec()
				}
			}
			m.mu.Unlock()
			logger.Info("ws client unregistered", "user_id", client.UserID, "total", m.GetClientCount())

		case event := <-m.broadcast:
			m.broadcastEvent(event)
		}
	}
}

// Publish доставляет событие всем соединениям пользователя.
// Отсутствие соединений не ошибка: клиент заберет уведомление из ленты.
func (m *Manager) Publish(userID, event string, payload interface{}) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for client := range m.clients[userID] {
		select {
		case client.Send <- Event{Event: event, Payload: payload}:
		default:
			// Канал заполнен, клиент отключается
			go func(c *Client) { m.unregister <- c }(client)
		}
	}
	return nil
}

// Broadcast отправляет событие всем подключенным клиентам
func (m *Manager) Broadcast(event string, payload interface{}) {
	m.broadcast <- Event{Event: event, Payload: payload}
}

func (m *Manager) broadcastEvent(event Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for userID, conns := range m.clients {
		for client := range conns {
			select {
			case client.Send <- event:
			default:
				go func(c *Client) { m.unregister <- c }(client)
				logger.Warn("ws client dropped, send channel full", "user_id", userID)
			}
		}
	}
}

// GetClientCount возвращает количество подключенных соединений
func (m *Manager) GetClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := 0
	for _, conns := range m.clients {
		total += len(conns)
	}
	return total
}

// IsClientConnected проверяет, подключен ли пользователь
func (m *Manager) IsClientConnected(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients[userID]) > 0
}
