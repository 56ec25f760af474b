package api

import (
	"fmt"
	"net"
	"net/http"
)

// hubHandler answers the connection point discovery endpoints. A
// client asks the hub where the messaging server lives before opening
// the TCP connection, and parses the host and port out of the reply.
type hubHandler struct {
	hostIP string
	ggPort int
}

func newHubHandler(cfg Config) *hubHandler {
	return &hubHandler{
		hostIP: cfg.HostIP,
		ggPort: cfg.GGPort,
	}
}

// ConnectionPoint handles GET /appsvc/appmsg4.asp.
//
// The reply format is fixed by the client parser: two numeric fields,
// the messaging endpoint, and a bare fallback host, separated by
// single spaces.
func (h *hubHandler) ConnectionPoint(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "0 0 %s:%d %s", h.hostIP, h.ggPort, h.hostIP)
}

// Probe handles GET /appsvc/appmsg3.asp. Older clients call it during
// startup and only check the status code.
func (h *hubHandler) Probe(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// LocalIP returns the preferred outbound IPv4 address of this host.
// Dialing UDP performs route selection without sending any packet.
func LocalIP() (net.IP, error) {
	conn, err := net.Dial("udp4", "8.8.8.8:80")
	if err != nil {
		return nil, err
	}
	defer func() { _ = conn.Close() }()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return nil, fmt.Errorf("unexpected local address type %T", conn.LocalAddr())
	}
	return addr.IP, nil
}
