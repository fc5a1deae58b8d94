package services

import (
	"log"
	"sync"
	"time"
)

const (
	rejectionWindow    = 10 * time.Minute
	rejectionThreshold = 5
	alertCooldown      = 1 * time.Hour
	maxAlerts          = 100
)

// SecurityEventMonitor counts rejected task API tokens per client IP and
// raises an alert when one IP keeps presenting bad tokens
type SecurityEventMonitor struct {
	mu         sync.Mutex
	rejections map[string][]time.Time // IP -> rejection timestamps
	alertedIPs map[string]time.Time   // IP -> last alert time
	alerts     []SecurityAlert        // newest first
	now        func() time.Time
}

// SecurityAlert represents a triggered security alert
type SecurityAlert struct {
	Timestamp time.Time
	IP        string
	Reason    string
	Level     string // "WARNING", "CRITICAL"
}

// Monitor is the process wide monitor, nil until InitSecurityMonitor runs
var Monitor *SecurityEventMonitor

// NewSecurityEventMonitor creates an empty monitor
func NewSecurityEventMonitor() *SecurityEventMonitor {
	return &SecurityEventMonitor{
		rejections: make(map[string][]time.Time),
		alertedIPs: make(map[string]time.Time),
		now:        time.Now,
	}
}

// InitSecurityMonitor initializes the global monitor and its cleanup loop
func InitSecurityMonitor() {
	m := NewSecurityEventMonitor()
	Monitor = m
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			m.Cleanup()
		}
	}()
}

// TrackRejectedToken records a token the task API refused
func (m *SecurityEventMonitor) TrackRejectedToken(ip string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	windowStart := now.Add(-rejectionWindow)

	recent := []time.Time{now}
	for _, t := range m.rejections[ip] {
		if t.After(windowStart) {
			recent = append(recent, t)
		}
	}
	m.rejections[ip] = recent

	if len(recent) >= rejectionThreshold {
		m.triggerAlertLocked(ip, "Repeated rejected task API tokens", now)
	}
}

// triggerAlertLocked records and logs an alert, at most one per IP per cooldown
func (m *SecurityEventMonitor) triggerAlertLocked(ip, reason string, now time.Time) {
	if last, alerted := m.alertedIPs[ip]; alerted && now.Sub(last) < alertCooldown {
		return
	}
	m.alertedIPs[ip] = now

	alert := SecurityAlert{
		Timestamp: now,
		IP:        ip,
		Reason:    reason,
		Level:     "CRITICAL",
	}
	m.alerts = append([]SecurityAlert{alert}, m.alerts...)
	if len(m.alerts) > maxAlerts {
		m.alerts = m.alerts[:maxAlerts]
	}

	log.Printf("[SECURITY ALERT] %s from IP: %s", reason, ip)
}

// GetRecentAlerts returns a copy of recent alerts
func (m *SecurityEventMonitor) GetRecentAlerts() []SecurityAlert {
	m.mu.Lock()
	defer m.mu.Unlock()
	alertsCopy := make([]SecurityAlert, len(m.alerts))
	copy(alertsCopy, m.alerts)
	return alertsCopy
}

// Cleanup removes stale counters and expired alert cooldowns
func (m *SecurityEventMonitor) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for ip, times := range m.rejections {
		// times[0] is the most recent rejection
		if len(times) == 0 || now.Sub(times[0]) > rejectionWindow {
			delete(m.rejections, ip)
		}
	}
	for ip, lastAlert := range m.alertedIPs {
		if now.Sub(lastAlert) > alertCooldown {
			delete(m.alertedIPs, ip)
		}
	}
}
