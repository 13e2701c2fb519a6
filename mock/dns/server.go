package dns

import (
	"github.com/miekg/dns"
)

// StartServer is a clone of the real code to start up a miekg DNS server. The tsig map
// may be nil for servers which don't verify transaction signatures.
func StartServer(net, serverAddr string, h dns.Handler, tsig map[string]string) *dns.Server {
	srv := &dns.Server{Net: net, Addr: serverAddr, Handler: h, TsigSecret: tsig}
	// The default accept func rejects dynamic updates with NOTIMP before they reach
	// the handler, so admit them here and leave everything else to the default.
	srv.MsgAcceptFunc = func(dh dns.Header) dns.MsgAcceptAction {
		if int(dh.Bits>>11)&0xF == dns.OpcodeUpdate {
			return dns.MsgAccept
		}
		return dns.DefaultMsgAcceptFunc(dh)
	}
	hasStarted := make(chan struct{})
	srv.NotifyStartedFunc = func() {
		hasStarted <- struct{}{}
	}

	go func() {
		err := srv.ListenAndServe()
		defer close(hasStarted)
		if err != nil { // Shutdown or real error?
			panic("Setup of Server failed:" + err.Error())
		}
	}()

	<-hasStarted // Wait for server, one way or the other

	return srv
}
