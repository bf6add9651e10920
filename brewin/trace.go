package brewin

import (
	"github.com/tliron/commonlog"
)

var (
	loadLog = commonlog.GetLogger("brewin.load")
	execLog = commonlog.GetLogger("brewin.exec")
)
