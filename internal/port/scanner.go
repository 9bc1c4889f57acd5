package port

import (
	"fmt"
	"net"
)

// Scanner checks whether a TCP port is available on the host machine.
//
// It asks the operating system directly via net.Listen, which is more
// reliable than parsing /proc/net/* or shelling out to lsof/ss, and needs
// no elevated permissions. The struct is stateless; it exists (rather than
// a bare function) so a bind address or timeout can be added later without
// breaking callers, and so the doctor can take it as an injectable
// dependency in tests.
type Scanner struct{}

// NewScanner creates a new Scanner instance.
func NewScanner() *Scanner {
	return &Scanner{}
}

// IsAvailable reports whether the given TCP port is currently free.
//
// It binds to all interfaces (":port" rather than "127.0.0.1:port")
// because the server may bind 0.0.0.0, so the same address space must be
// checked to avoid false positives. The probe listener is closed
// immediately — availability is tested, connections are never accepted.
func (s *Scanner) IsAvailable(port int) bool {
	if port < 1 || port > 65535 {
		return false
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false
	}
	defer func() { _ = listener.Close() }()
	return true
}
