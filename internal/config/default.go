package config

// DefaultXSetFinity is the process-wide default capacity bound applied to a
// newly created XSet when no FINITY option is given and no config override
// is set. It is large enough to behave as "effectively unbounded" while
// still satisfying the invariant that finity must be a positive integer.
const DefaultXSetFinity = 1 << 32

func DefaultConfig() Config {
	return Config{
		TLS:                   false,
		MTLS:                  false,
		CertKeyPairs:          make([][]string, 0),
		ClientCAs:             make([]string, 0),
		Port:                  7480,
		ServerID:              "",
		BindAddr:              "localhost",
		DataDir:               ".",
		RequirePass:           false,
		Password:              "",
		XSetFinity:            DefaultXSetFinity,
		XSetPruning:           "maxscore",
		XSetMaxZiplistEntries: 128,
		XSetMaxZiplistValue:   64,
	}
}
