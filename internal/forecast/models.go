package forecast

// Days is the forecast horizon: today plus four days ahead.
const Days = 5

// Temperature is a daily average air temperature in degrees Celsius.
type Temperature float32

// Forecast holds one temperature per day, index 0 being today. There are no
// partial forecasts; providers and the aggregator produce all five days or
// fail.
type Forecast [Days]Temperature

// dayFormat buckets timestamps into calendar days for cache validity.
const dayFormat = "2006-01-02"
