package gocube

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"tinygo.org/x/bluetooth"
)

var (
	ErrNotConnected     = errors.New("gocube: not connected to device")
	ErrAlreadyConnected = errors.New("gocube: already connected to a device")
	ErrServiceNotFound  = errors.New("gocube: uart service not found")
)

var (
	serviceUUID = mustParseUUID(ServiceUUID)
	txCharUUID  = mustParseUUID(TxCharUUID)
	rxCharUUID  = mustParseUUID(RxCharUUID)
)

func mustParseUUID(s string) bluetooth.UUID {
	u, err := bluetooth.ParseUUID(s)
	if err != nil {
		panic(err)
	}
	return u
}

// ScanResult is a discovered cube.
type ScanResult struct {
	Name    string
	Address bluetooth.Address
	RSSI    int16
}

// Client is a BLE connection to one GoCube.
type Client struct {
	adapter *bluetooth.Adapter
	log     *zap.Logger

	device bluetooth.Device
	rxChar bluetooth.DeviceCharacteristic

	mu        sync.RWMutex
	connected bool
	name      string
	battery   int

	onRotation   func([]Rotation)
	onDisconnect func()
}

// NewClient enables the default adapter.
func NewClient(log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}

	c := &Client{adapter: adapter, log: log, battery: -1}
	adapter.SetConnectHandler(func(d bluetooth.Device, connected bool) {
		if !connected {
			c.handleDisconnect()
		}
	})
	return c, nil
}

// OnRotation sets the callback for decoded face turns. It runs on the BLE
// stack's goroutine and must not block.
func (c *Client) OnRotation(cb func([]Rotation)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onRotation = cb
}

// OnDisconnect sets the callback for a dropped connection.
func (c *Client) OnDisconnect(cb func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onDisconnect = cb
}

// Scan lists devices whose name starts with "GoCube" until timeout or ctx
// is done.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]ScanResult, error) {
	if c.IsConnected() {
		return nil, ErrAlreadyConnected
	}

	var (
		mu      sync.Mutex
		results []ScanResult
		seen    = make(map[string]bool)
		scanErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		scanErr = c.adapter.Scan(func(_ *bluetooth.Adapter, r bluetooth.ScanResult) {
			name := r.LocalName()
			if !strings.HasPrefix(strings.ToLower(name), "gocube") {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			addr := r.Address.String()
			if seen[addr] {
				return
			}
			seen[addr] = true
			results = append(results, ScanResult{Name: name, Address: r.Address, RSSI: r.RSSI})
			c.log.Debug("device found", zap.String("name", name), zap.String("address", addr), zap.Int16("rssi", r.RSSI))
		})
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	case <-done:
	}
	c.adapter.StopScan()
	<-done

	if scanErr != nil {
		return nil, fmt.Errorf("scan failed: %w", scanErr)
	}
	mu.Lock()
	defer mu.Unlock()
	return results, nil
}

// Connect opens the UART service on a scanned device and subscribes to
// notifications.
func (c *Client) Connect(ctx context.Context, target ScanResult) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	device, err := c.adapter.Connect(target.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	tx, rx, err := discover(device)
	if err != nil {
		device.Disconnect()
		return err
	}
	if err := tx.EnableNotifications(c.handleNotification); err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to enable notifications: %w", err)
	}

	c.mu.Lock()
	c.device = device
	c.rxChar = rx
	c.connected = true
	c.name = target.Name
	c.mu.Unlock()

	c.log.Info("connected", zap.String("device", target.Name))
	if err := c.SendCommand(CmdRequestBattery); err != nil {
		c.log.Warn("battery request failed", zap.Error(err))
	}
	return nil
}

func discover(device bluetooth.Device) (tx, rx bluetooth.DeviceCharacteristic, err error) {
	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		return tx, rx, fmt.Errorf("failed to discover services: %w", err)
	}
	if len(services) == 0 {
		return tx, rx, ErrServiceNotFound
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txCharUUID, rxCharUUID})
	if err != nil {
		return tx, rx, fmt.Errorf("failed to discover characteristics: %w", err)
	}
	for _, ch := range chars {
		switch ch.UUID() {
		case txCharUUID:
			tx = ch
		case rxCharUUID:
			rx = ch
		}
	}
	return tx, rx, nil
}

// Disconnect closes the connection. It is a no-op when not connected.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return nil
	}
	err := c.device.Disconnect()
	c.connected = false
	c.name = ""
	c.battery = -1
	return err
}

func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

func (c *Client) DeviceName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

// Battery returns the last reported level, or -1 if unknown.
func (c *Client) Battery() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.battery
}

// SendCommand writes a framed command to the cube.
func (c *Client) SendCommand(cmd byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.connected {
		return ErrNotConnected
	}

	if _, err := c.rxChar.WriteWithoutResponse(BuildCommand(cmd)); err != nil {
		return fmt.Errorf("write command 0x%02x: %w", cmd, err)
	}
	return nil
}

func (c *Client) handleNotification(data []byte) {
	msg, err := ParseMessage(data)
	if err != nil {
		c.log.Debug("dropped notification", zap.Binary("data", data), zap.Error(err))
		return
	}

	switch msg.Type {
	case MsgTypeBattery:
		if level, err := DecodeBattery(msg.Payload); err == nil {
			c.mu.Lock()
			c.battery = level
			c.mu.Unlock()
			c.log.Debug("battery", zap.Int("level", level))
		}
	case MsgTypeRotation:
		rotations, err := DecodeRotation(msg.Payload)
		if err != nil {
			c.log.Warn("bad rotation payload", zap.Error(err))
			return
		}
		c.mu.RLock()
		cb := c.onRotation
		c.mu.RUnlock()
		if cb != nil {
			cb(rotations)
		}
	default:
		c.log.Debug("message", zap.String("type", MessageTypeName(msg.Type)))
	}
}

func (c *Client) handleDisconnect() {
	c.mu.Lock()
	wasConnected := c.connected
	c.connected = false
	cb := c.onDisconnect
	c.mu.Unlock()

	if wasConnected {
		c.log.Info("disconnected")
		if cb != nil {
			cb()
		}
	}
}
