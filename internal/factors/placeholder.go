package factors

import "time"

// Fixture constants. Fixtures never read the clock.
var (
	placeholderDate      = time.Date(2023, time.September, 11, 16, 5, 56, 0, time.UTC)
	placeholderOtherDate = time.Date(2023, time.December, 24, 17, 13, 56, 123_000_000, time.UTC)
)

const (
	placeholderDeviceBody  = "3c986ebf9dcd9167a97036d3b2c997433e85e6cc4e4422ad89269dac7bfea240"
	placeholderLedgerBody  = "3c986ebf9dcd9167a97036d3b2c997433e85e6cc4e4422ad89269dac7bfea240"
	placeholderOlympiaBody = "8bfacfe888d4e3819c6e9528a1c8f680a4ea73e589e1ebf7af2e7ef1e16ad818"
	placeholderBabylonBody = "5f07ec336e9e7891bff04004c817201e73c097b6b1e1b3a26bc501e0010196f5"
)

// PlaceholderCommon is the main Babylon common used by most fixtures.
func PlaceholderCommon() FactorSourceCommon {
	return NewFactorSourceCommon(BabylonCryptoParameters(), placeholderDate, placeholderDate, FlagMain)
}

// PlaceholderCommonOther is a non-main Olympia common.
func PlaceholderCommonOther() FactorSourceCommon {
	return NewFactorSourceCommon(OlympiaCryptoParameters(), placeholderOtherDate, placeholderOtherDate)
}

// PlaceholderDevice is the main BDFS fixture.
func PlaceholderDevice() DeviceFactorSource {
	return NewDeviceFactorSource(
		MustParseHash32(placeholderDeviceBody),
		PlaceholderCommon(),
		DeviceFactorSourceHint{Name: "Unknown Name", Model: "iPhone", MnemonicWordCount: 24},
	)
}

// PlaceholderDeviceOlympia is an Olympia device fixture with a 12 word mnemonic.
func PlaceholderDeviceOlympia() DeviceFactorSource {
	return NewDeviceFactorSource(
		MustParseHash32(placeholderOlympiaBody),
		PlaceholderCommonOther(),
		DeviceFactorSourceHint{Name: "Olympia Phone", Model: "iPhone", MnemonicWordCount: 12},
	)
}

// PlaceholderDeviceBabylon is a main Babylon device fixture distinct from PlaceholderDevice.
func PlaceholderDeviceBabylon() DeviceFactorSource {
	return NewDeviceFactorSource(
		MustParseHash32(placeholderBabylonBody),
		PlaceholderCommon(),
		DeviceFactorSourceHint{Name: "Babylon Phone", Model: "iPhone", MnemonicWordCount: 24},
	)
}

// PlaceholderLedger is the Ledger fixture.
func PlaceholderLedger() LedgerHardwareWalletFactorSource {
	return NewLedgerHardwareWalletFactorSource(
		MustParseHash32(placeholderLedgerBody),
		PlaceholderCommon(),
		LedgerHardwareWalletHint{Name: "Orange, scratched", Model: LedgerNanoSPlus},
	)
}

// PlaceholderLedgerOther shares the Ledger id but differs in common and hint.
func PlaceholderLedgerOther() LedgerHardwareWalletFactorSource {
	return NewLedgerHardwareWalletFactorSource(
		MustParseHash32(placeholderLedgerBody),
		PlaceholderCommonOther(),
		LedgerHardwareWalletHint{Name: "Purple, new", Model: LedgerNanoX},
	)
}

// Placeholder returns [device, ledger]. Every call returns a fresh instance
// equal to every other call.
func Placeholder() FactorSources {
	return NewFactorSources(
		FromDevice(PlaceholderDevice()),
		FromLedger(PlaceholderLedger()),
	)
}

// PlaceholderOther returns [olympia device, babylon device], distinct from Placeholder.
func PlaceholderOther() FactorSources {
	return NewFactorSources(
		FromDevice(PlaceholderDeviceOlympia()),
		FromDevice(PlaceholderDeviceBabylon()),
	)
}
