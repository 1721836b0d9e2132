package obctest

import (
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// OBCClient plays the on-board computer: it sends telecommand datagrams and
// reads back one telemetry datagram per command.
type OBCClient struct {
	conn net.Conn
	seq  int
}

func NewOBCClient(address string, timeout time.Duration) (*OBCClient, error) {
	conn, err := net.DialTimeout("udp", address, timeout)
	if err != nil {
		return nil, err
	}
	return &OBCClient{conn: conn}, nil
}

// Send frames and sends one raw JSON command without waiting for a reply.
func (c *OBCClient) Send(command string, class, subtype byte) error {
	packet := BuildSpacePacket(command, c.seq, class, subtype)
	c.seq = (c.seq + 1) % 16384
	_, err := c.conn.Write(packet)
	return err
}

// SendRaw sends arbitrary bytes, for malformed-packet tests.
func (c *OBCClient) SendRaw(data []byte) error {
	_, err := c.conn.Write(data)
	return err
}

// Receive reads one telemetry datagram.
func (c *OBCClient) Receive() (*Telemetry, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		return nil, err
	}
	buf := make([]byte, 4096)
	n, err := c.conn.Read(buf)
	if err != nil {
		return nil, err
	}
	return ParseSpacePacket(buf[:n])
}

// Exchange sends one command and returns the response.
func (c *OBCClient) Exchange(command any, class, subtype byte) (*Telemetry, error) {
	data, err := json.Marshal(command)
	if err != nil {
		return nil, err
	}
	if err := c.Send(string(data), class, subtype); err != nil {
		return nil, err
	}
	return c.Receive()
}

// ReturnCode sends one command and extracts the PduReturnCode of the
// acknowledgement it expects back.
func (c *OBCClient) ReturnCode(command any, class, subtype byte) (int, error) {
	tm, err := c.Exchange(command, class, subtype)
	if err != nil {
		return -1, err
	}
	raw, ok := tm.JSON["PduMsgAcknowledgement"]
	if !ok {
		return -1, fmt.Errorf("expected an acknowledgement, got %v", tm.JSON)
	}
	var body struct {
		PduReturnCode int `json:"PduReturnCode"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return -1, err
	}
	return body.PduReturnCode, nil
}

func (c *OBCClient) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}
