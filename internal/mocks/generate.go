package mocks

//go:generate mockery --name Converter --srcpkg github.com/freightpulse/freightpulse/internal/core/calculation --output ./calculation --outpkg calculationmocks --with-expecter
//go:generate mockery --name ResultStore --srcpkg github.com/freightpulse/freightpulse/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name FreightRecordStore --srcpkg github.com/freightpulse/freightpulse/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name Store --srcpkg github.com/freightpulse/freightpulse/internal/cache --output ./cache --outpkg cachemocks --with-expecter
//go:generate mockery --name Publisher --srcpkg github.com/freightpulse/freightpulse/internal/events --output ./events --outpkg eventsmocks --with-expecter
