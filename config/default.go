package config

// DefaultVars are not config fields, just values the config files refer to
const DefaultVars = `
PathRWData = "/tmp/rollupchain"
`

// DefaultValues is the default configuration
const DefaultValues = `
# Log configuration
[Log]
  # Environment is the environment where the node is running
  Environment = "development" # "production" or "development"
  # Level is the log level
  Level = "info"
  # Outputs are the outputs where the logs will be written
  Outputs = ["stderr"]

[Chain]
  # ForceInclusionPeriod is how long the submitters keep the exclusive right to append a queued entry.
  # It's also the maximum age of the timestamp of a submitted batch
  ForceInclusionPeriod = "10m"
  # Submitters are the addresses allowed to append batches
  Submitters = []
  # QueueProducer is the only address allowed to enqueue L1 originated elements
  QueueProducer = "0x0000000000000000000000000000000000000000"
  # PermissionlessSubmission lets anybody append batches, Submitters is ignored
  PermissionlessSubmission = false

[Archive]
  # DBPath is the path of the database
  DBPath = "{{PathRWData}}/archive.sqlite"
  ProofCacheSize = 1024

[RPC]
  # Host defines the network adapter that will be used to serve the HTTP requests.
  # Callers of the chain_ write methods are not authenticated by the node, only expose it
  # behind a proxy that does it
  Host = "127.0.0.1"
  # Port defines the port to serve the endpoints via HTTP
  Port = 5576
  # ReadTimeout is the HTTP server read timeout
  # check net/http.server.ReadTimeout and net/http.server.ReadHeaderTimeout
  ReadTimeout = "2s"
  # WriteTimeout is the HTTP server write timeout
  # check net/http.server.WriteTimeout
  WriteTimeout = "2s"
  # MaxRequestsPerIPAndSecond defines how much requests a single IP can
  # send within a single second
  MaxRequestsPerIPAndSecond = 10

[Submitter]
  # Address is the identity the submitter appends batches with, it must be one of Chain.Submitters
  Address = "0x0000000000000000000000000000000000000000"
  # Interval is the time between two rounds of submission
  Interval = "5s"
  # MaxBatchSize is the maximum number of elements of a submitted batch
  MaxBatchSize = 100
  # RetryAfterErrorPeriod is the time that will be waited when an unexpected error happens before retry
  RetryAfterErrorPeriod = "1s"
  # MaxRetryAttemptsAfterError is the maximum number of consecutive attempts that will happen before panicing.
  # Any number smaller than zero will be considered as unlimited retries
  MaxRetryAttemptsAfterError = -1
`
