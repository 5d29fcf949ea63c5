// Package cli команды CLI устройства: локальные операции с репликой
// и синхронизация с хабом.
package cli

import (
	"github.com/iudanet/synchub/internal/device/data"
	"github.com/iudanet/synchub/internal/device/iocli"
	"github.com/iudanet/synchub/internal/device/sync"
)

type Cli struct {
	io          iocli.IO
	dataService data.Service
	syncService sync.Service
}

// New создает CLI. syncService может быть nil для локальных команд.
func New(io iocli.IO, dataService data.Service, syncService sync.Service) *Cli {
	return &Cli{
		io:          io,
		dataService: dataService,
		syncService: syncService,
	}
}
