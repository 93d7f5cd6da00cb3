package timing

//go:generate mockgen -destination "mock_timing_test.go" -self_package=github.com/sarchlab/stagehand/timing -package $GOPACKAGE -write_package_comment=false github.com/sarchlab/stagehand/timing Tickable
