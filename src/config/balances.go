package config

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/overline-mining/nemgen/src/common"
	"github.com/overline-mining/nemgen/src/genesis"
	"github.com/overline-mining/nemgen/src/keys"
)

func LoadBalancesCSV(path string, network common.Network) ([]genesis.Account, error) {
	balFile, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer balFile.Close()
	accounts, err := ReadBalancesCSV(balFile, network)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return accounts, nil
}

// ReadBalancesCSV reads address,amount records in order. A leading header
// record is skipped.
func ReadBalancesCSV(r io.Reader, network common.Network) ([]genesis.Account, error) {
	csvReader := csv.NewReader(r)
	csvReader.ReuseRecord = false
	csvReader.FieldsPerRecord = 2
	csvReader.TrimLeadingSpace = true
	csvReader.Comment = '#'

	accounts := make([]genesis.Account, 0)
	for record := 1; ; record++ {
		rec, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if record == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "address") {
			continue
		}
		addr, err := keys.ParseAddress(rec[0], network)
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", record)
		}
		amount, err := ParseAmount(rec[1])
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", record)
		}
		accounts = append(accounts, genesis.Account{Address: addr.Bytes(), Amount: amount})
	}
	return accounts, nil
}
